package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceInterface is the slice of cart behaviour checkout depends on.
type ServiceInterface interface {
	GetCart(userID int) ([]CartItem, error)
	ClearCart(userID int) error
}

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddToCart(userID int, productID int, qty int) ([]CartItem, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	// zero qty does nothing, but we still return the current cart
	if qty == 0 {
		return s.repo.GetCart(userID)
	}
	return s.repo.AddToCart(userID, productID, qty, now())
}

// SetQuantity pins an exact quantity; anything below 1 removes the line so a
// zero-quantity entry can never be persisted.
func (s *Service) SetQuantity(userID int, productID int, qty int) ([]CartItem, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.SetQuantity(userID, productID, qty, now())
}

func (s *Service) RemoveItem(userID int, productID int) ([]CartItem, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.RemoveItem(userID, productID, now())
}

func (s *Service) GetCart(userID int) ([]CartItem, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetCart(userID)
}

func (s *Service) ClearCart(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.ClearCart(userID, now())
}

// Subtotal recomputes the cart subtotal for display and checkout.
func (s *Service) Subtotal(userID int) (decimal.Decimal, error) {
	items, err := s.GetCart(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return Subtotal(items), nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
