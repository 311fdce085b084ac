package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/models"
)

// GuestName is the sentinel customer used when a sale carries no
// customer identity. Guests never accumulate spend totals.
const GuestName = "Guest"

// CartLine is one product/quantity pair in a proposed sale.
type CartLine struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// SaleInput is a proposed sale. Exactly one of CustomerID or
// CustomerName identifies the buyer; with neither, the sale is
// attributed to the business's Guest customer. Client-declared totals
// are deliberately absent: totals are always computed server-side from
// current product prices.
type SaleInput struct {
	BusinessID    uint
	ClientRef     string
	Cart          []CartLine
	CustomerID    uint
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
}

// RecordedSale is the authoritative outcome of a recorded sale.
type RecordedSale struct {
	SaleID     uint    `json:"saleId"`
	ClientRef  string  `json:"clientRef"`
	CustomerID uint    `json:"customerId"`
	Total      float64 `json:"total"`
	ZigTotal   float64 `json:"zigTotal"`
	Replayed   bool    `json:"-"`
}

// SaleRecorder commits a sale and all of its side effects (inventory
// decrement, customer credit, line item snapshots) as one transaction,
// or commits nothing at all.
type SaleRecorder struct {
	db *gorm.DB
}

func NewSaleRecorder(db *gorm.DB) *SaleRecorder {
	return &SaleRecorder{db: db}
}

// Record validates and commits a sale. Replaying the same ClientRef
// with an identical payload returns the original result without any
// further effect; replaying it with a different payload fails with a
// ConflictError.
func (r *SaleRecorder) Record(in SaleInput) (*RecordedSale, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}

	in.Cart = consolidateCart(in.Cart)
	hash := requestHash(in)

	if in.ClientRef == "" {
		in.ClientRef = uuid.NewString()
	} else {
		existing, err := r.findByClientRef(in.BusinessID, in.ClientRef)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return replayResult(existing, hash)
		}
	}

	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, &StorageError{Op: "begin sale transaction", Err: tx.Error}
	}

	recorded, err := r.recordInTx(tx, in, hash)
	if err != nil {
		tx.Rollback()
		// A concurrent retry with the same key may have won the unique
		// index race; if so, hand back its result instead of an error.
		if existing, lookupErr := r.findByClientRef(in.BusinessID, in.ClientRef); lookupErr == nil && existing != nil {
			return replayResult(existing, hash)
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, &StorageError{Op: "commit sale", Err: err}
	}
	return recorded, nil
}

func (r *SaleRecorder) recordInTx(tx *gorm.DB, in SaleInput, hash string) (*RecordedSale, error) {
	var business models.Business
	if err := tx.First(&business, in.BusinessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, &StorageError{Op: "business lookup", Err: err}
	}
	if !business.Active {
		return nil, ErrBusinessInactive
	}

	customer, err := resolveCustomer(tx, in)
	if err != nil {
		return nil, err
	}

	var total, zigTotal float64
	items := make([]models.SaleItem, 0, len(in.Cart))
	for _, line := range in.Cart {
		var product models.Product
		err := tx.Where("id = ? AND business_id = ?", line.ProductID, in.BusinessID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, &StorageError{Op: "product lookup", Err: err}
		}

		if _, err := adjustInventory(tx, in.BusinessID, product.ID, -line.Quantity); err != nil {
			return nil, err
		}

		total += product.Price * float64(line.Quantity)
		zigTotal += product.ZigPrice * float64(line.Quantity)
		items = append(items, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
			ZigPrice:    product.ZigPrice,
		})
	}

	sale := models.Sale{
		BusinessID:    in.BusinessID,
		CustomerID:    customer.ID,
		ClientRef:     in.ClientRef,
		RequestHash:   hash,
		Total:         total,
		ZigTotal:      zigTotal,
		PaymentMethod: in.PaymentMethod,
	}
	if err := tx.Create(&sale).Error; err != nil {
		return nil, &StorageError{Op: "sale create", Err: err}
	}

	for i := range items {
		items[i].SaleID = sale.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			return nil, &StorageError{Op: "sale item create", Err: err}
		}
	}

	if !customer.Guest {
		if err := creditCustomer(tx, in.BusinessID, customer.ID, total, zigTotal); err != nil {
			return nil, err
		}
	}

	return &RecordedSale{
		SaleID:     sale.ID,
		ClientRef:  sale.ClientRef,
		CustomerID: customer.ID,
		Total:      total,
		ZigTotal:   zigTotal,
	}, nil
}

// resolveCustomer finds the customer a sale belongs to: by id, by exact
// case-insensitive name within the business (oldest match wins), or the
// business's Guest sentinel.
func resolveCustomer(tx *gorm.DB, in SaleInput) (*models.Customer, error) {
	if in.CustomerID != 0 {
		var customer models.Customer
		err := tx.Where("id = ? AND business_id = ?", in.CustomerID, in.BusinessID).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		if err != nil {
			return nil, &StorageError{Op: "customer lookup", Err: err}
		}
		return &customer, nil
	}

	name := strings.TrimSpace(in.CustomerName)
	if name != "" {
		var customer models.Customer
		err := tx.Where("business_id = ? AND LOWER(name) = ? AND guest = ?",
			in.BusinessID, strings.ToLower(name), false).
			Order("id ASC").
			First(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &StorageError{Op: "customer lookup", Err: err}
		}

		customer = models.Customer{
			BusinessID: in.BusinessID,
			Name:       name,
			Phone:      strings.TrimSpace(in.CustomerPhone),
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, &StorageError{Op: "customer create", Err: err}
		}
		return &customer, nil
	}

	var guest models.Customer
	err := tx.Where("business_id = ? AND guest = ?", in.BusinessID, true).First(&guest).Error
	if err == nil {
		return &guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &StorageError{Op: "guest lookup", Err: err}
	}

	guest = models.Customer{
		BusinessID: in.BusinessID,
		Name:       GuestName,
		Guest:      true,
	}
	if err := tx.Create(&guest).Error; err != nil {
		return nil, &StorageError{Op: "guest create", Err: err}
	}
	return &guest, nil
}

func (r *SaleRecorder) findByClientRef(businessID uint, clientRef string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.Where("business_id = ? AND client_ref = ?", businessID, clientRef).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "idempotency lookup", Err: err}
	}
	return &sale, nil
}

func replayResult(sale *models.Sale, hash string) (*RecordedSale, error) {
	if sale.RequestHash != hash {
		return nil, &ConflictError{ClientRef: sale.ClientRef}
	}
	return &RecordedSale{
		SaleID:     sale.ID,
		ClientRef:  sale.ClientRef,
		CustomerID: sale.CustomerID,
		Total:      sale.Total,
		ZigTotal:   sale.ZigTotal,
		Replayed:   true,
	}, nil
}

func validateSaleInput(in SaleInput) error {
	if len(in.Cart) == 0 {
		return ErrEmptyCart
	}
	for _, line := range in.Cart {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return ErrInvalidPayment
	}
	return nil
}

// consolidateCart merges duplicate product lines so the inventory
// adjuster runs once per distinct product, keeping first-seen order.
func consolidateCart(cart []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(cart))
	index := make(map[uint]int, len(cart))
	for _, line := range cart {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// requestHash is a canonical digest of the sale payload, used to detect
// an idempotency key being reused with a different request.
func requestHash(in SaleInput) string {
	lines := make([]string, 0, len(in.Cart))
	for _, line := range in.Cart {
		lines = append(lines, fmt.Sprintf("%d:%d", line.ProductID, line.Quantity))
	}
	sort.Strings(lines)

	payload := fmt.Sprintf("%d|%d|%s|%s|%s|%s",
		in.BusinessID,
		in.CustomerID,
		strings.ToLower(strings.TrimSpace(in.CustomerName)),
		strings.TrimSpace(in.CustomerPhone),
		strings.TrimSpace(in.PaymentMethod),
		strings.Join(lines, ","),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
