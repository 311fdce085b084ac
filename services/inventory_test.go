package services

import (
	"errors"
	"testing"
)

func TestAdjust_IncrementAndDecrement(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Flour 2kg", 2.5, 60, 10)

	adjuster := NewInventoryAdjuster(db)

	count, err := adjuster.Adjust(business.ID, product.ID, 5)
	if err != nil {
		t.Fatalf("adjust +5: %v", err)
	}
	if count != 15 {
		t.Fatalf("count = %d, want 15", count)
	}

	count, err = adjuster.Adjust(business.ID, product.ID, -15)
	if err != nil {
		t.Fatalf("adjust -15: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestAdjust_RejectsNegativeResult(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Eggs (crate)", 4, 100, 3)

	adjuster := NewInventoryAdjuster(db)
	_, err := adjuster.Adjust(business.ID, product.ID, -4)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Available != 3 || stockErr.Requested != 4 {
		t.Fatalf("unexpected details: %+v", stockErr)
	}
	if Kind(err) != KindInsufficientStock {
		t.Fatalf("kind = %q, want %q", Kind(err), KindInsufficientStock)
	}
	if got := productInventory(t, db, product.ID); got != 3 {
		t.Fatalf("inventory = %d, want untouched 3", got)
	}
}

func TestAdjust_UnknownOrForeignProduct(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Dried Fish", 5, 125, 10)

	adjuster := NewInventoryAdjuster(db)

	if _, err := adjuster.Adjust(business.ID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}

	// Tenant boundary: another business cannot touch this stock.
	if _, err := adjuster.Adjust(business.ID+1, product.ID, -1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if got := productInventory(t, db, product.ID); got != 10 {
		t.Fatalf("inventory = %d, want untouched 10", got)
	}
}
