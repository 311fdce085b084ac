package models

import "github.com/jinzhu/gorm"

// Sale is immutable once recorded. ClientRef is the client-supplied
// idempotency key, unique within a business; RequestHash lets a replay
// with a different payload be rejected instead of silently reused.
type Sale struct {
	gorm.Model
	BusinessID    uint       `json:"businessId" gorm:"not null;unique_index:idx_business_client_ref"`
	CustomerID    uint       `json:"customerId" gorm:"not null;index"`
	Customer      Customer   `json:"customer" gorm:"foreignkey:CustomerID"`
	ClientRef     string     `json:"clientRef" gorm:"not null;unique_index:idx_business_client_ref"`
	RequestHash   string     `json:"-" gorm:"not null"`
	Total         float64    `json:"total"`
	ZigTotal      float64    `json:"zigTotal"`
	PaymentMethod string     `json:"paymentType"`
	Items         []SaleItem `json:"items" gorm:"foreignkey:SaleID"`
}

// SaleItem snapshots the product's name and prices at the moment of
// sale, so later catalog edits cannot drift historical totals.
type SaleItem struct {
	gorm.Model
	SaleID      uint    `json:"saleId" gorm:"not null;index"`
	ProductID   uint    `json:"productId" gorm:"not null;index"`
	ProductName string  `json:"name"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price"`
	ZigPrice    float64 `json:"zigPrice"`
}
