package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
)

// GetDashboard returns the headline counts for the home screen.
func GetDashboard(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var sales, customers, products int
	if err := database.DB.Model(&models.Sale{}).
		Where("business_id = ?", businessID).Count(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}
	if err := database.DB.Model(&models.Customer{}).
		Where("business_id = ?", businessID).Count(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}
	if err := database.DB.Model(&models.Product{}).
		Where("business_id = ?", businessID).Count(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":     sales,
		"customers": customers,
		"products":  products,
	})
}
