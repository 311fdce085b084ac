package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
	"github.com/codewithkin/TengaPOS/services"
)

func handleProductError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, services.ErrProductNotFound)
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func GetProducts(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var products []models.Product
	if err := database.DB.Where("business_id = ?", businessID).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	id := c.Param("id")
	var product models.Product
	if err := database.DB.
		Where("business_id = ? AND id = ?", businessID, id).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog. The image has already
// been uploaded by the client; only its URL is stored.
func CreateProduct(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		Name        string  `json:"productName" binding:"required"`
		Description string  `json:"productDescription"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		ZigPrice    float64 `json:"zigPrice"`
		Inventory   int     `json:"quantity" binding:"gte=0"`
		ImageURL    string  `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject duplicate names within the business
	var existing models.Product
	err := database.DB.Where(
		"business_id = ? AND LOWER(name) = ?",
		businessID,
		strings.ToLower(input.Name),
	).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Product with this name already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		BusinessID:  businessID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ZigPrice:    input.ZigPrice,
		Inventory:   input.Inventory,
		ImageURL:    input.ImageURL,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Created product " + product.Name + " successfully!",
		"productId": product.ID,
		"product":   product,
	})
}

// UpdateProduct edits catalog fields. Inventory is excluded here; stock
// movement goes through UpdateInventory so the non-negative floor holds.
func UpdateProduct(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	id := c.Param("id")
	var product models.Product
	if err := database.DB.
		Where("business_id = ? AND id = ?", businessID, id).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ZigPrice    *float64 `json:"zigPrice"`
		ImageURL    *string  `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
			return
		}
		updates["price"] = *input.Price
	}
	if input.ZigPrice != nil {
		updates["zig_price"] = *input.ZigPrice
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := database.DB.First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	id := c.Param("id")
	var product models.Product
	if err := database.DB.
		Where("business_id = ? AND id = ?", businessID, id).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// SearchProducts finds products by name substring, case-insensitive.
func SearchProducts(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	var products []models.Product
	if err := database.DB.
		Where("business_id = ? AND LOWER(name) LIKE ?", businessID, "%"+strings.ToLower(term)+"%").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// TopSellingProducts returns the revenue ranking for a period.
func TopSellingProducts(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	analytics := services.NewAnalytics(database.DB)
	report, err := analytics.TopSellingProducts(businessID, c.Query("period"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateInventory applies a signed stock adjustment through the
// inventory adjuster.
func UpdateInventory(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		ProductID  uint `json:"productId" binding:"required"`
		Adjustment *int `json:"adjustment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adjuster := services.NewInventoryAdjuster(database.DB)
	newCount, err := adjuster.Adjust(businessID, input.ProductID, *input.Adjustment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": input.ProductID,
		"inventory": newCount,
	})
}

// LowStockItems lists products running low, for the dashboard warning.
func LowStockItems(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var products []models.Product
	if err := database.DB.
		Where("business_id = ? AND inventory < ?", businessID, 10).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}
