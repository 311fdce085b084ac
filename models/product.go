package models

import "github.com/jinzhu/gorm"

// Product carries a price in both trading currencies (USD and ZiG).
// Inventory never goes below zero; all stock movement goes through the
// inventory adjuster so the floor is enforced at the storage layer.
type Product struct {
	gorm.Model
	BusinessID  uint    `json:"businessId" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ZigPrice    float64 `json:"zigPrice"`
	Inventory   int     `json:"inventory"`
	ImageURL    string  `json:"imageUrl"`
}
