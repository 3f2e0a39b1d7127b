package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrTotalsMismatch = errors.New("order totals do not add up")
)

// Creator is the slice of the order service checkout submits through.
type Creator interface {
	Create(ord Order) (Order, error)
}

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create persists a new order. The caller (checkout) has already validated
// the form data; totals are re-checked here so a drifted client can never
// book a total that disagrees with its own line items.
func (s *Service) Create(ord Order) (Order, error) {
	if len(ord.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	subtotal := decimal.Zero
	for _, item := range ord.Items {
		if item.Quantity < 1 || item.UnitPrice.IsNegative() {
			return Order{}, ErrTotalsMismatch
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !subtotal.Equal(ord.Subtotal) {
		return Order{}, ErrTotalsMismatch
	}
	if !ord.Subtotal.Sub(ord.Discount).Equal(ord.Total) {
		return Order{}, ErrTotalsMismatch
	}

	if ord.Status == "" {
		ord.Status = StatusPending
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if ord.CreatedAt == "" {
		ord.CreatedAt = now
	}
	ord.UpdatedAt = now

	return s.repo.Create(ord)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

// UpdateStatus moves an order along the fulfilment flow. Terminal orders
// stay put and skipping ahead is rejected.
func (s *Service) UpdateStatus(id int, status string) (Order, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if isTerminalStatus(current.Status) || !transitionAllowed(current.Status, status) {
		return Order{}, ErrInvalidTransition
	}
	return s.repo.UpdateStatus(id, status, time.Now().UTC().Format(time.RFC3339))
}
