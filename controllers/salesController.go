package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
	"github.com/codewithkin/TengaPOS/services"
)

// CreateSale records a sale through the sale recorder. The declared
// totals in the body are a display hint from the client and are never
// used; the response carries the server-computed totals.
func CreateSale(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		Cart           []services.CartLine `json:"cart"`
		CustomerID     uint                `json:"customerId"`
		Name           string              `json:"name"`
		Phone          string              `json:"phone"`
		PaymentMethod  string              `json:"paymentMethod"`
		IdempotencyKey string              `json:"idempotencyKey"`
		Total          float64             `json:"total"`
		ZigTotal       float64             `json:"zigTotal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recorder := services.NewSaleRecorder(database.DB)
	recorded, err := recorder.Record(services.SaleInput{
		BusinessID:    businessID,
		ClientRef:     input.IdempotencyKey,
		Cart:          input.Cart,
		CustomerID:    input.CustomerID,
		CustomerName:  input.Name,
		CustomerPhone: input.Phone,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if recorded.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"message":   "Sale completed !",
		"saleId":    recorded.SaleID,
		"clientRef": recorded.ClientRef,
		"total":     recorded.Total,
		"zigTotal":  recorded.ZigTotal,
	})
}

// GetSale returns one sale with its items and customer.
func GetSale(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	saleID := c.Query("saleId")
	if saleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "saleId is required"})
		return
	}

	var sale models.Sale
	if err := database.DB.Preload("Customer").Preload("Items").
		Where("id = ? AND business_id = ?", saleID, businessID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrSaleNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// GetSales lists sales newest first with pagination.
func GetSales(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var sales []models.Sale
	if err := database.DB.Preload("Customer").Preload("Items").
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	var total int
	if err := database.DB.Model(&models.Sale{}).
		Where("business_id = ?", businessID).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sales,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetRecentSales returns the last five sales with customer names.
func GetRecentSales(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	analytics := services.NewAnalytics(database.DB)
	recent, err := analytics.RecentSales(businessID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recent)
}

// GetSalesAnalytics returns the zero-filled trend buckets for the
// requested range.
func GetSalesAnalytics(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	analytics := services.NewAnalytics(database.DB)
	points, err := analytics.SalesTrend(businessID, c.Query("range"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// DeleteSaleRecords clears the sales history for a business.
func DeleteSaleRecords(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	tx := database.DB.Begin()
	if err := tx.Where("sale_id IN (?)",
		tx.Model(&models.Sale{}).Select("id").Where("business_id = ?", businessID).QueryExpr()).
		Delete(&models.SaleItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear sales history"})
		return
	}
	if err := tx.Where("business_id = ?", businessID).Delete(&models.Sale{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear sales history"})
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Sales records cleared successfully"})
}

// DownloadSale renders a PDF receipt for one sale.
func DownloadSale(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	saleID := c.Query("saleId")
	if saleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "saleId is required"})
		return
	}

	var sale models.Sale
	if err := database.DB.Preload("Customer").Preload("Items").
		Where("id = ? AND business_id = ?", saleID, businessID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrSaleNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
		return
	}

	var business models.Business
	if err := database.DB.First(&business, businessID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
		return
	}

	pdf, err := generateReceiptPDF(&sale, &business)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", sale.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
