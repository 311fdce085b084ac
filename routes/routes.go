package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codewithkin/TengaPOS/controllers"
	"github.com/codewithkin/TengaPOS/middleware"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", controllers.SignUp)
		auth.POST("/signin", controllers.SignIn)
		auth.GET("/verify-email", controllers.VerifyEmail)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("", controllers.GetDashboard)
		protected.POST("/auth/logout", controllers.Logout)

		// Product routes
		products := protected.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/search", controllers.SearchProducts)
			products.GET("/top-selling", controllers.TopSellingProducts)
			products.GET("/low-stock", controllers.LowStockItems)
			products.GET("/:id", controllers.GetProduct)
			products.POST("", controllers.CreateProduct)
			products.PUT("/inventory", controllers.UpdateInventory)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Customer routes
		customers := protected.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/search", controllers.SearchCustomers)
			customers.POST("", controllers.CreateCustomer)
			customers.PUT("", controllers.EditCustomer)
			customers.DELETE("", controllers.DeleteCustomer)
		}

		// Sale routes
		protected.POST("/sale", controllers.CreateSale)
		protected.GET("/sale", controllers.GetSale)
		protected.GET("/sale/download", controllers.DownloadSale)
		sales := protected.Group("/sales")
		{
			sales.GET("", controllers.GetSales)
			sales.GET("/recent", controllers.GetRecentSales)
			sales.GET("/analytics", controllers.GetSalesAnalytics)
			sales.DELETE("", controllers.DeleteSaleRecords)
		}

		// Payment routes
		protected.POST("/payments/upgrade", controllers.UpgradePlan)
	}
}
