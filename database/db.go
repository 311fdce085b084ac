package database

import (
	"fmt"
	"log"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"

	"github.com/codewithkin/TengaPOS/config"
	"github.com/codewithkin/TengaPOS/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	cfg := config.LoadConfig()
	connectionString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword)

	var err error
	DB, err = gorm.Open("postgres", connectionString)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}

	Migrate(DB)
}

// Migrate runs the schema migrations. Split out so tests can run it
// against their own database handle.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.Business{},
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
		&models.VerificationToken{},
	)
}
