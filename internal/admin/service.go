package admin

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/product"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrBadPercent      = errors.New("percent must be between -90 and 500")
)

// Service provides business logic for the admin dashboard.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Summary() (Summary, error) {
	return s.repo.Summary()
}

func (s *Service) RevenueByDay(days int) ([]RevenuePoint, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	return s.repo.RevenueByDay(days)
}

func (s *Service) TopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return s.repo.TopProducts(limit)
}

// AdjustPricesByCategory applies a percentage change to every product in a
// category and returns how many rows changed. The bounds keep a typo from
// wiping out or exploding the price list.
func (s *Service) AdjustPricesByCategory(category string, percent decimal.Decimal) (int, error) {
	valid := false
	for _, c := range product.AllowedCategories {
		if c == category {
			valid = true
			break
		}
	}
	if !valid {
		return 0, ErrUnknownCategory
	}
	if percent.LessThan(decimal.NewFromInt(-90)) || percent.GreaterThan(decimal.NewFromInt(500)) {
		return 0, ErrBadPercent
	}
	return s.repo.AdjustPricesByCategory(category, percent)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
