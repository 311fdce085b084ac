package models

import "github.com/jinzhu/gorm"

// VerificationToken is issued at signup and consumed by the
// verify-email endpoint.
type VerificationToken struct {
	gorm.Model
	Token      string `json:"token" gorm:"not null;unique_index"`
	BusinessID uint   `json:"businessId" gorm:"not null;index"`
}
