package models

import "github.com/jinzhu/gorm"

// Customer tracks cumulative spend in both currencies. Totals only ever
// go up, and only the sale recorder writes them. Each business has a
// single sentinel Guest customer that is never credited.
type Customer struct {
	gorm.Model
	BusinessID    uint    `json:"businessId" gorm:"not null;index"`
	Name          string  `json:"name" gorm:"not null"`
	Phone         string  `json:"phone"`
	TotalSpent    float64 `json:"totalSpent"`
	TotalSpentZig float64 `json:"totalSpentZig"`
	Guest         bool    `json:"guest" gorm:"default:false"`
}
