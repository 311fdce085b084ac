package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/codewithkin/TengaPOS/models"
)

func recordTestSale(t *testing.T, db *gorm.DB, businessID uint, cart []CartLine, name string) *RecordedSale {
	t.Helper()
	recorded, err := NewSaleRecorder(db).Record(SaleInput{
		BusinessID:    businessID,
		Cart:          cart,
		CustomerName:  name,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	return recorded
}

func backdateSale(t *testing.T, db *gorm.DB, saleID uint, at time.Time) {
	t.Helper()
	if err := db.Model(&models.Sale{}).Where("id = ?", saleID).
		UpdateColumn("created_at", at).Error; err != nil {
		t.Fatalf("backdate sale: %v", err)
	}
}

func TestRecentSales_NewestFirstCappedAtFive(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Airtime $1", 1, 25, 100)

	now := time.Now()
	for i := 0; i < 6; i++ {
		recorded := recordTestSale(t, db, business.ID,
			[]CartLine{{ProductID: product.ID, Quantity: i + 1}}, "Jane")
		backdateSale(t, db, recorded.SaleID, now.Add(-time.Duration(i)*time.Hour))
	}

	recent, err := NewAnalytics(db).RecentSales(business.ID)
	if err != nil {
		t.Fatalf("recent sales: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("len = %d, want 5", len(recent))
	}
	if recent[0].CustomerName != "Jane" {
		t.Fatalf("customer name = %q, want Jane", recent[0].CustomerName)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("not newest first at index %d", i)
		}
	}
	// The oldest of the six sales dropped off.
	if recent[0].Total != 1 {
		t.Fatalf("newest total = %v, want 1", recent[0].Total)
	}
}

func TestSalesTrend_WeeklyBackfillsEmptyDays(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Soft Drink", 1, 25, 100)

	// One sale today, one five days ago, nothing in between.
	recordTestSale(t, db, business.ID, []CartLine{{ProductID: product.ID, Quantity: 2}}, "")
	old := recordTestSale(t, db, business.ID, []CartLine{{ProductID: product.ID, Quantity: 3}}, "")
	backdateSale(t, db, old.SaleID, time.Now().AddDate(0, 0, -5))

	points, err := NewAnalytics(db).SalesTrend(business.ID, "weekly")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("len = %d, want 7", len(points))
	}

	if points[1].Total != 3 {
		t.Fatalf("day -5 total = %v, want 3", points[1].Total)
	}
	if points[6].Total != 2 {
		t.Fatalf("today total = %v, want 2", points[6].Total)
	}
	for _, i := range []int{0, 2, 3, 4, 5} {
		if points[i].Total != 0 {
			t.Fatalf("empty day %d total = %v, want 0", i, points[i].Total)
		}
		if points[i].Label == "" {
			t.Fatalf("empty day %d missing label", i)
		}
	}
}

func TestSalesTrend_InvalidRange(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)

	_, err := NewAnalytics(db).SalesTrend(business.ID, "hourly")
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if Kind(err) != KindValidation {
		t.Fatalf("kind = %q, want %q", Kind(err), KindValidation)
	}
}

func TestTrendBuckets_DailySlots(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{Model: gorm.Model{CreatedAt: time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)}, Total: 5},
		{Model: gorm.Model{CreatedAt: time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)}, Total: 7},
		{Model: gorm.Model{CreatedAt: time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)}, Total: 3},
	}

	points := trendBuckets(sales, "daily", now)
	want := []TrendPoint{
		{Label: "0-6", Total: 5},
		{Label: "6-12", Total: 0},
		{Label: "12-18", Total: 10},
		{Label: "18-24", Total: 0},
	}
	if len(points) != len(want) {
		t.Fatalf("len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("points[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestTrendBuckets_MonthlyLabels(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	points := trendBuckets(nil, "monthly", now)
	if len(points) != 6 {
		t.Fatalf("len = %d, want 6", len(points))
	}
	if points[0].Label != "Jan 2025" || points[5].Label != "Jun 2025" {
		t.Fatalf("labels = %q..%q, want Jan 2025..Jun 2025", points[0].Label, points[5].Label)
	}
	for _, p := range points {
		if p.Total != 0 {
			t.Fatalf("expected all-zero buckets, got %+v", p)
		}
	}
}

func TestTopSelling_RanksByRevenueFromSnapshots(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	cheap := seedProduct(t, db, business.ID, "Bread", 1, 25, 100)
	dear := seedProduct(t, db, business.ID, "Braai Pack", 20, 500, 100)

	recordTestSale(t, db, business.ID, []CartLine{{ProductID: cheap.ID, Quantity: 30}}, "")
	recordTestSale(t, db, business.ID, []CartLine{{ProductID: dear.ID, Quantity: 5}}, "")

	// Raising the live price must not change the period's revenue.
	db.Model(&models.Product{}).Where("id = ?", dear.ID).Update("price", 100)

	report, err := NewAnalytics(db).TopSellingProducts(business.ID, "this-month", 5)
	if err != nil {
		t.Fatalf("top selling: %v", err)
	}

	if len(report.Products) != 2 {
		t.Fatalf("products = %d, want 2", len(report.Products))
	}
	if report.Products[0].ProductID != dear.ID || report.Products[0].TotalRevenue != 100 {
		t.Fatalf("top product = %+v, want braai pack at 100", report.Products[0])
	}
	if report.Products[1].TotalRevenue != 30 || report.Products[1].TotalSold != 30 {
		t.Fatalf("second product = %+v, want bread 30/30", report.Products[1])
	}
	if report.TotalRevenue != 130 {
		t.Fatalf("total revenue = %v, want 130", report.TotalRevenue)
	}
}

func TestTopSelling_PercentageChange(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Chips", 2, 50, 1000)

	now := time.Now()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	// Previous period: $50. Current period: $100.
	prev := recordTestSale(t, db, business.ID, []CartLine{{ProductID: product.ID, Quantity: 25}}, "")
	backdateSale(t, db, prev.SaleID, lastMonth)
	recordTestSale(t, db, business.ID, []CartLine{{ProductID: product.ID, Quantity: 50}}, "")

	report, err := NewAnalytics(db).TopSellingProducts(business.ID, "this-month", 5)
	if err != nil {
		t.Fatalf("top selling: %v", err)
	}
	if report.PercentageChange != 100 {
		t.Fatalf("change = %v, want 100", report.PercentageChange)
	}
}

func TestTopSelling_ZeroPreviousPeriodMeansZeroChange(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)
	product := seedProduct(t, db, business.ID, "Chips", 2, 50, 1000)

	recordTestSale(t, db, business.ID, []CartLine{{ProductID: product.ID, Quantity: 25}}, "")

	report, err := NewAnalytics(db).TopSellingProducts(business.ID, "this-month", 5)
	if err != nil {
		t.Fatalf("top selling: %v", err)
	}
	if report.TotalRevenue != 50 {
		t.Fatalf("revenue = %v, want 50", report.TotalRevenue)
	}
	if report.PercentageChange != 0 {
		t.Fatalf("change = %v, want 0 when previous period is empty", report.PercentageChange)
	}
}

func TestTopSelling_InvalidPeriod(t *testing.T) {
	db := openTestDB(t)
	business := seedBusiness(t, db)

	_, err := NewAnalytics(db).TopSellingProducts(business.ID, "this-week", 5)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v, want ErrInvalidPeriod", err)
	}
}
