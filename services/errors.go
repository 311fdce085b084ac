package services

import (
	"errors"
	"fmt"
)

// Stable machine-readable error kinds returned to API callers.
const (
	KindNotFound          = "NOT_FOUND"
	KindValidation        = "VALIDATION_ERROR"
	KindInsufficientStock = "INSUFFICIENT_STOCK"
	KindConflict          = "CONFLICT"
	KindStorage           = "STORAGE_FAILURE"
)

var (
	ErrBusinessNotFound = errors.New("business does not exist")
	ErrCustomerNotFound = errors.New("customer not found in your business")
	ErrProductNotFound  = errors.New("product not found in your business")
	ErrSaleNotFound     = errors.New("sale not found")

	ErrBusinessInactive = errors.New("business is not active")
	ErrEmptyCart        = errors.New("cart must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidPayment   = errors.New("payment method is required")
	ErrNegativeAmount   = errors.New("spend amounts must not be negative")
	ErrInvalidRange     = errors.New("invalid range, allowed values: daily, weekly, monthly")
	ErrInvalidPeriod    = errors.New("invalid period, allowed values: this-month, last-month, this-year")
)

// InsufficientStockError names the offending product so the caller can
// tell which cart line could not be filled.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// ConflictError is returned when an idempotency key is replayed with a
// different payload than the original request.
type ConflictError struct {
	ClientRef string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("idempotency key %q was already used with a different payload", e.ClientRef)
}

// StorageError wraps a failed read or write against the store. The
// whole operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Kind classifies an error into the taxonomy above.
func Kind(err error) string {
	var stock *InsufficientStockError
	if errors.As(err, &stock) {
		return KindInsufficientStock
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return KindConflict
	}
	switch {
	case errors.Is(err, ErrBusinessNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSaleNotFound):
		return KindNotFound
	case errors.Is(err, ErrBusinessInactive),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrInvalidPeriod):
		return KindValidation
	}
	return KindStorage
}
