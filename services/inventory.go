package services

import (
	"errors"

	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/models"
)

// InventoryAdjuster applies signed stock deltas to products. The delta
// is applied as a single conditional UPDATE so concurrent adjustments
// against the same product can never lose an update or drive the count
// below zero.
type InventoryAdjuster struct {
	db *gorm.DB
}

func NewInventoryAdjuster(db *gorm.DB) *InventoryAdjuster {
	return &InventoryAdjuster{db: db}
}

// Adjust applies delta to the product's inventory and returns the new
// count. It fails with InsufficientStockError if the result would go
// negative, leaving the count untouched.
func (a *InventoryAdjuster) Adjust(businessID, productID uint, delta int) (int, error) {
	return adjustInventory(a.db, businessID, productID, delta)
}

// adjustInventory is shared with the sale recorder so the same atomic
// update runs inside the recorder's transaction.
func adjustInventory(db *gorm.DB, businessID, productID uint, delta int) (int, error) {
	res := db.Model(&models.Product{}).
		Where("id = ? AND business_id = ? AND inventory + ? >= 0", productID, businessID, delta).
		Update("inventory", gorm.Expr("inventory + ?", delta))
	if res.Error != nil {
		return 0, &StorageError{Op: "inventory adjustment", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		// Either the product does not exist for this business or the
		// guard rejected the delta.
		var product models.Product
		err := db.Where("id = ? AND business_id = ?", productID, businessID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		if err != nil {
			return 0, &StorageError{Op: "inventory lookup", Err: err}
		}
		return product.Inventory, &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   -delta,
			Available:   product.Inventory,
		}
	}

	var product models.Product
	if err := db.Where("id = ? AND business_id = ?", productID, businessID).First(&product).Error; err != nil {
		return 0, &StorageError{Op: "inventory lookup", Err: err}
	}
	return product.Inventory, nil
}
