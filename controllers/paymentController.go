package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
)

var validPlans = map[string]bool{
	"free":    true,
	"starter": true,
	"pro":     true,
}

// UpgradePlan records the plan change after the payment gateway
// confirms a payment. The gateway integration itself lives outside this
// service; only the resulting plan write happens here.
func UpgradePlan(c *gin.Context) {
	businessID, ok := businessIDFrom(c)
	if !ok {
		return
	}

	var input struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validPlans[input.Plan] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plan"})
		return
	}

	if err := database.DB.Model(&models.Business{}).
		Where("id = ?", businessID).
		Update("plan", input.Plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan upgraded successfully !"})
}
