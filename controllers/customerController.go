package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
	"github.com/codewithkin/TengaPOS/services"
)

func GetCustomers(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := database.DB.Where("business_id = ?", businessID).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func CreateCustomer(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		BusinessID: businessID,
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created successfully !",
		"customer": customer,
	})
}

// EditCustomer updates identity fields only. Spend totals are owned by
// the sale recorder and cannot be edited here.
func EditCustomer(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		ID    uint    `json:"id" binding:"required"`
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := database.DB.Where("id = ? AND business_id = ?", input.ID, businessID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrCustomerNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&customer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit customer"})
			return
		}
		if err := database.DB.First(&customer, customer.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit customer"})
			return
		}
	}

	c.JSON(http.StatusOK, customer)
}

func DeleteCustomer(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	customerID := c.Query("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId is required"})
		return
	}

	var customer models.Customer
	if err := database.DB.Where("id = ? AND business_id = ?", customerID, businessID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrCustomerNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// SearchCustomers matches name or phone by substring.
func SearchCustomers(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	term := strings.TrimSpace(c.Query("searchTerm"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "searchTerm is required"})
		return
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var customers []models.Customer
	if err := database.DB.
		Where("business_id = ? AND (LOWER(name) LIKE ? OR LOWER(phone) LIKE ?)", businessID, pattern, pattern).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
