package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discounter is the slice of the promotion service checkout prices with.
type Discounter interface {
	BestDiscount(subtotal decimal.Decimal) decimal.Decimal
}

// Service provides business logic for promotions.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Promotion, error) {
	return s.repo.List()
}

// ListActive returns the promotions currently in their active window.
func (s *Service) ListActive() ([]Promotion, error) {
	promos, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	active := []Promotion{}
	for _, p := range promos {
		if p.ActiveAt(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

// BestDiscount returns the single largest discount any active promotion
// grants on the given subtotal. Promotions never stack. A repository
// failure prices the cart without a discount rather than blocking checkout.
func (s *Service) BestDiscount(subtotal decimal.Decimal) decimal.Decimal {
	promos, err := s.ListActive()
	if err != nil {
		return decimal.Zero
	}
	best := decimal.Zero
	for _, p := range promos {
		if d := p.Discount(subtotal); d.GreaterThan(best) {
			best = d
		}
	}
	return best
}

func (s *Service) Create(p Promotion) (Promotion, error) {
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Create(p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
