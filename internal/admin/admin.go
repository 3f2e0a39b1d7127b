package admin

import "github.com/shopspring/decimal"

// Summary is the dashboard headline card: counts and lifetime revenue.
// Cancelled orders are excluded from every figure.
type Summary struct {
	Orders    int             `json:"orders"`
	Customers int             `json:"customers"`
	Products  int             `json:"products"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// RevenuePoint is one day of revenue for the dashboard chart.
type RevenuePoint struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct is one row of the best-sellers table.
type TopProduct struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"productName"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
