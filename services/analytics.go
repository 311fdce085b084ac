package services

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/models"
)

// Analytics derives read-only rollups from committed sales. Failures
// degrade to zero-valued results plus the error, never partial data.
type Analytics struct {
	db *gorm.DB
}

func NewAnalytics(db *gorm.DB) *Analytics {
	return &Analytics{db: db}
}

// TrendPoint is one bucket of the sales trend. Buckets with no sales
// are emitted with Total 0 rather than omitted.
type TrendPoint struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// RecentSale is a sale summary for the dashboard list.
type RecentSale struct {
	SaleID       uint      `json:"saleId"`
	CustomerName string    `json:"customerName"`
	Total        float64   `json:"total"`
	ZigTotal     float64   `json:"zigTotal"`
	PaymentType  string    `json:"paymentType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TopProduct aggregates a product's sales within a period, valued at
// the prices snapshotted on each line item.
type TopProduct struct {
	ProductID    uint    `json:"productId"`
	Name         string  `json:"name"`
	TotalSold    int     `json:"totalSold"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// TopProductsReport is the top-selling rollup for one period.
type TopProductsReport struct {
	Products         []TopProduct `json:"products"`
	TotalRevenue     float64      `json:"totalRevenue"`
	PercentageChange float64      `json:"percentageChange"`
	Period           string       `json:"period"`
}

const recentSalesLimit = 5

// RecentSales returns the newest sales with their customer's name,
// capped at five.
func (a *Analytics) RecentSales(businessID uint) ([]RecentSale, error) {
	var sales []models.Sale
	if err := a.db.Preload("Customer").
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(recentSalesLimit).
		Find(&sales).Error; err != nil {
		return nil, &StorageError{Op: "recent sales", Err: err}
	}

	recent := make([]RecentSale, 0, len(sales))
	for _, sale := range sales {
		recent = append(recent, RecentSale{
			SaleID:       sale.ID,
			CustomerName: sale.Customer.Name,
			Total:        sale.Total,
			ZigTotal:     sale.ZigTotal,
			PaymentType:  sale.PaymentMethod,
			CreatedAt:    sale.CreatedAt,
		})
	}
	return recent, nil
}

// SalesTrend buckets sale totals over the requested range: 6-hour
// slots over the last 24 hours, daily over the last 7 days, or monthly
// over the last 6 months.
func (a *Analytics) SalesTrend(businessID uint, rng string) ([]TrendPoint, error) {
	now := time.Now()

	var start time.Time
	switch rng {
	case "daily":
		start = now.Add(-24 * time.Hour)
	case "weekly":
		start = now.AddDate(0, 0, -6)
	case "monthly":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	default:
		return nil, ErrInvalidRange
	}

	var sales []models.Sale
	if err := a.db.Select("total, created_at").
		Where("business_id = ? AND created_at >= ? AND created_at <= ?", businessID, start, now).
		Find(&sales).Error; err != nil {
		return nil, &StorageError{Op: "sales trend", Err: err}
	}

	return trendBuckets(sales, rng, now), nil
}

// trendBuckets assigns sales to labelled buckets and back-fills empty
// buckets with zero.
func trendBuckets(sales []models.Sale, rng string, now time.Time) []TrendPoint {
	var labels []string
	var labelFor func(time.Time) string

	switch rng {
	case "daily":
		// Hour-of-day slots, matching the dashboard's 6h view.
		labels = []string{"0-6", "6-12", "12-18", "18-24"}
		labelFor = func(t time.Time) string {
			return labels[t.Hour()/6]
		}
	case "weekly":
		start := now.AddDate(0, 0, -6)
		for i := 0; i < 7; i++ {
			labels = append(labels, start.AddDate(0, 0, i).Format("2006-01-02"))
		}
		labelFor = func(t time.Time) string { return t.Format("2006-01-02") }
	case "monthly":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
		for i := 0; i < 6; i++ {
			labels = append(labels, start.AddDate(0, i, 0).Format("Jan 2006"))
		}
		labelFor = func(t time.Time) string { return t.Format("Jan 2006") }
	}

	totals := make(map[string]float64, len(labels))
	for _, sale := range sales {
		totals[labelFor(sale.CreatedAt)] += sale.Total
	}

	points := make([]TrendPoint, 0, len(labels))
	for _, label := range labels {
		points = append(points, TrendPoint{Label: label, Total: totals[label]})
	}
	return points
}

// TopSellingProducts ranks products by revenue within the period and
// reports the change against the preceding period. Revenue is computed
// from line item snapshots, not live prices.
func (a *Analytics) TopSellingProducts(businessID uint, period string, limit int) (*TopProductsReport, error) {
	now := time.Now()

	start, end, prevStart, prevEnd, err := periodWindow(period, now)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = recentSalesLimit
	}

	var products []TopProduct
	err = a.db.Raw(`
		SELECT sale_items.product_id AS product_id,
		       sale_items.product_name AS name,
		       SUM(sale_items.quantity) AS total_sold,
		       SUM(sale_items.quantity * sale_items.price) AS total_revenue
		FROM sale_items
		JOIN sales ON sales.id = sale_items.sale_id
		WHERE sales.business_id = ?
		  AND sales.created_at >= ? AND sales.created_at < ?
		  AND sales.deleted_at IS NULL AND sale_items.deleted_at IS NULL
		GROUP BY sale_items.product_id, sale_items.product_name
		ORDER BY total_revenue DESC
		LIMIT ?`, businessID, start, end, limit).Scan(&products).Error
	if err != nil {
		return &TopProductsReport{Period: period}, &StorageError{Op: "top selling products", Err: err}
	}

	var currentRevenue float64
	for _, p := range products {
		currentRevenue += p.TotalRevenue
	}

	previousRevenue, err := a.periodRevenue(businessID, prevStart, prevEnd)
	if err != nil {
		return &TopProductsReport{Period: period}, err
	}

	change := 0.0
	if previousRevenue > 0 {
		change = (currentRevenue - previousRevenue) / previousRevenue * 100
	}

	return &TopProductsReport{
		Products:         products,
		TotalRevenue:     currentRevenue,
		PercentageChange: change,
		Period:           period,
	}, nil
}

func (a *Analytics) periodRevenue(businessID uint, start, end time.Time) (float64, error) {
	var row struct {
		Revenue float64
	}
	err := a.db.Raw(`
		SELECT COALESCE(SUM(sale_items.quantity * sale_items.price), 0) AS revenue
		FROM sale_items
		JOIN sales ON sales.id = sale_items.sale_id
		WHERE sales.business_id = ?
		  AND sales.created_at >= ? AND sales.created_at < ?
		  AND sales.deleted_at IS NULL AND sale_items.deleted_at IS NULL`,
		businessID, start, end).Scan(&row).Error
	if err != nil {
		return 0, &StorageError{Op: "period revenue", Err: err}
	}
	return row.Revenue, nil
}

// periodWindow returns the half-open [start, end) windows for the
// requested period and the one preceding it.
func periodWindow(period string, now time.Time) (start, end, prevStart, prevEnd time.Time, err error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	switch period {
	case "this-month":
		start, end = monthStart, now.Add(time.Second)
		prevStart, prevEnd = monthStart.AddDate(0, -1, 0), monthStart
	case "last-month":
		start, end = monthStart.AddDate(0, -1, 0), monthStart
		prevStart, prevEnd = monthStart.AddDate(0, -2, 0), monthStart.AddDate(0, -1, 0)
	case "this-year":
		start, end = yearStart, now.Add(time.Second)
		prevStart, prevEnd = yearStart.AddDate(-1, 0, 0), yearStart
	default:
		err = ErrInvalidPeriod
	}
	return
}
