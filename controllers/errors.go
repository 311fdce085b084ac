package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithkin/TengaPOS/services"
)

// respondError maps a service error onto an HTTP status plus a stable
// machine-readable code. Nothing is swallowed into a 200.
func respondError(c *gin.Context, err error) {
	kind := services.Kind(err)

	status := http.StatusInternalServerError
	switch kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindInsufficientStock, services.KindConflict:
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": kind})
}

// businessIDFrom pulls the authenticated business out of the gin
// context set by the auth middleware.
func businessIDFrom(c *gin.Context) (uint, bool) {
	businessID, exists := c.Get("business_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Business context required"})
		return 0, false
	}
	return businessID.(uint), true
}
