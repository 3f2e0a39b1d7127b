package admin

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"orders", "customers", "products", "revenue"}).
		AddRow(12, 8, 31, "18450.50")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	summary, err := repo.Summary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Orders != 12 || summary.Customers != 8 || summary.Products != 31 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if !summary.Revenue.Equal(decimal.RequireFromString("18450.50")) {
		t.Fatalf("unexpected revenue %s", summary.Revenue)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRevenueByDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"day", "orders", "revenue"}).
		AddRow("2026-08-30", 3, "900.00").
		AddRow("2026-08-29", 1, "890.50")
	mock.ExpectQuery("FROM orders").WithArgs(30).WillReturnRows(rows)

	points, err := repo.RevenueByDay(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 || points[0].Day != "2026-08-30" || points[0].Orders != 3 {
		t.Fatalf("unexpected points: %+v", points)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTopProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"product_id", "product_name", "units", "revenue"}).
		AddRow(1, "Pine Plank", 40, "6000.00")
	mock.ExpectQuery("jsonb_array_elements").WithArgs(5).WillReturnRows(rows)

	top, err := repo.TopProducts(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Pine Plank" || top[0].UnitsSold != 40 {
		t.Fatalf("unexpected top products: %+v", top)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAdjustPricesByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	service := NewService(NewPostgresRepository(db))

	mock.ExpectExec("UPDATE products").
		WithArgs("Decking", "5", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	changed, err := service.AdjustPricesByCategory("Decking", decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 7 {
		t.Fatalf("expected 7 rows updated, got %d", changed)
	}

	// guard rails, no query expected
	if _, err := service.AdjustPricesByCategory("Fish tanks", decimal.NewFromInt(5)); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := service.AdjustPricesByCategory("Decking", decimal.NewFromInt(1000)); err != ErrBadPercent {
		t.Fatalf("expected ErrBadPercent, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
