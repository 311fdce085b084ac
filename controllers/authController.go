package controllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SignUp registers a business and issues its email verification token.
func SignUp(c *gin.Context) {
	var input struct {
		OwnerName     string `json:"ownerName" binding:"required"`
		BusinessName  string `json:"businessName" binding:"required"`
		BusinessEmail string `json:"businessEmail" binding:"required,email"`
		BusinessLogo  string `json:"businessLogo"`
		Password      string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Business
	if err := database.DB.Where("business_email = ?", input.BusinessEmail).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Business already exists, please sign in"})
		return
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	business := models.Business{
		BusinessName:  input.BusinessName,
		OwnerName:     input.OwnerName,
		BusinessEmail: input.BusinessEmail,
		LogoURL:       input.BusinessLogo,
		Password:      hashedPassword,
		Plan:          "free",
		Active:        true,
	}
	if err := database.DB.Create(&business).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}

	token := models.VerificationToken{
		Token:      uuid.NewString(),
		BusinessID: business.ID,
	}
	if err := database.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification token"})
		return
	}

	// Delivery of the verification email is handled by an external
	// mailer; the token is returned so staging setups can verify
	// without one.
	c.JSON(http.StatusCreated, gin.H{
		"message": "Business created successfully",
		"business": gin.H{
			"id":    business.ID,
			"name":  business.BusinessName,
			"email": business.BusinessEmail,
		},
		"verificationToken": token.Token,
	})
}

// SignIn verifies credentials and issues the business JWT.
func SignIn(c *gin.Context) {
	var input struct {
		BusinessEmail string `json:"businessEmail" binding:"required"`
		Password      string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var business models.Business
	if err := database.DB.Where("business_email = ?", input.BusinessEmail).First(&business).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !CheckPasswordHash(input.Password, business.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"business_id":   business.ID,
		"business_name": business.BusinessName,
		"email":         business.BusinessEmail,
		"exp":           expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.SetCookie("token", tokenString, 86400, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   tokenString,
		"business": gin.H{
			"id":       business.ID,
			"name":     business.BusinessName,
			"email":    business.BusinessEmail,
			"plan":     business.Plan,
			"verified": business.Verified,
		},
		"expires_at": expirationTime.Unix(),
	})
}

// VerifyEmail consumes a verification token and marks the business
// verified.
func VerifyEmail(c *gin.Context) {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	var token models.VerificationToken
	if err := database.DB.Where("token = ?", tokenValue).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Verification token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify email"})
		return
	}

	if err := database.DB.Model(&models.Business{}).
		Where("id = ?", token.BusinessID).
		Update("verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify email"})
		return
	}

	database.DB.Delete(&token)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Logout clears the auth cookie.
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
