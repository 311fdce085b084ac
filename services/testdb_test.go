package services

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/codewithkin/TengaPOS/database"
	"github.com/codewithkin/TengaPOS/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.LogMode(false)
	// A single connection keeps every query on the same in-memory
	// database.
	db.DB().SetMaxOpenConns(1)
	database.Migrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedBusiness(t *testing.T, db *gorm.DB) *models.Business {
	t.Helper()
	business := models.Business{
		BusinessName:  "Takura General Dealer",
		OwnerName:     "Takura M",
		BusinessEmail: "takura@example.com",
		Password:      "hashed",
		Plan:          "free",
		Active:        true,
	}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return &business
}

func seedProduct(t *testing.T, db *gorm.DB, businessID uint, name string, price, zigPrice float64, inventory int) *models.Product {
	t.Helper()
	product := models.Product{
		BusinessID: businessID,
		Name:       name,
		Price:      price,
		ZigPrice:   zigPrice,
		Inventory:  inventory,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}

func seedCustomer(t *testing.T, db *gorm.DB, businessID uint, name string) *models.Customer {
	t.Helper()
	customer := models.Customer{
		BusinessID: businessID,
		Name:       name,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &customer
}

func productInventory(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Inventory
}

func customerByID(t *testing.T, db *gorm.DB, customerID uint) *models.Customer {
	t.Helper()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	return &customer
}
