package models

import "github.com/jinzhu/gorm"

// Business is the tenant root. Every other record is scoped to exactly
// one business and must never be read or written across that boundary.
type Business struct {
	gorm.Model
	BusinessName  string      `json:"businessName" gorm:"not null"`
	OwnerName     string      `json:"ownerName"`
	BusinessEmail string      `json:"businessEmail" gorm:"not null;unique_index"`
	Password      string      `json:"-" gorm:"not null"`
	LogoURL       string      `json:"businessLogo"`
	Plan          string      `json:"plan" gorm:"default:'free'"`
	Verified      bool        `json:"verified" gorm:"default:false"`
	Active        bool        `json:"isActive" gorm:"default:true"`
	Products      []*Product  `json:"-" gorm:"foreignkey:BusinessID"`
	Customers     []*Customer `json:"-" gorm:"foreignkey:BusinessID"`
	Sales         []*Sale     `json:"-" gorm:"foreignkey:BusinessID"`
}
