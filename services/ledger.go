package services

import (
	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/models"
)

// CustomerLedger tracks cumulative spend per customer. Totals are
// monotonically non-decreasing; there is no refund path.
type CustomerLedger struct {
	db *gorm.DB
}

func NewCustomerLedger(db *gorm.DB) *CustomerLedger {
	return &CustomerLedger{db: db}
}

// RecordSpend atomically increments both currency totals.
func (l *CustomerLedger) RecordSpend(businessID, customerID uint, amount, zigAmount float64) error {
	return creditCustomer(l.db, businessID, customerID, amount, zigAmount)
}

func creditCustomer(db *gorm.DB, businessID, customerID uint, amount, zigAmount float64) error {
	if amount < 0 || zigAmount < 0 {
		return ErrNegativeAmount
	}

	res := db.Model(&models.Customer{}).
		Where("id = ? AND business_id = ?", customerID, businessID).
		Updates(map[string]interface{}{
			"total_spent":     gorm.Expr("total_spent + ?", amount),
			"total_spent_zig": gorm.Expr("total_spent_zig + ?", zigAmount),
		})
	if res.Error != nil {
		return &StorageError{Op: "customer credit", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
