package cart

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

var (
	ErrNotFound = errors.New("user not found")
)

// CartItem is one cart line: catalog summary plus quantity.
// Quantity is always >= 1; a drop below 1 removes the line instead.
type CartItem struct {
	product.Summary
	Quantity int `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal sums line totals over all items.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Repository provides access to per-user carts. The cart is stored as a
// productID -> quantity map on the user row.
type Repository interface {
	AddToCart(userID int, productID int, qty int, updatedAt string) ([]CartItem, error)
	SetQuantity(userID int, productID int, qty int, updatedAt string) ([]CartItem, error)
	RemoveItem(userID int, productID int, updatedAt string) ([]CartItem, error)
	GetCart(userID int) ([]CartItem, error)
	ClearCart(userID int, updatedAt string) error
}

// InMemoryRepository is used for tests and local scenarios. The catalog map
// supplies product details for enrichment; unknown ids come back with the
// bare productID the way a missing join row would.
type InMemoryRepository struct {
	mu      sync.RWMutex
	users   []user.User
	catalog map[int]product.Summary
}

func NewInMemoryRepository(seed []user.User, catalog map[int]product.Summary) *InMemoryRepository {
	r := &InMemoryRepository{
		users:   make([]user.User, 0, len(seed)),
		catalog: catalog,
	}
	r.users = append(r.users, seed...)
	return r
}

func (r *InMemoryRepository) AddToCart(userID int, productID int, qty int, updatedAt string) ([]CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			if u.Cart == nil {
				u.Cart = make(map[int]int)
			}
			u.Cart[productID] += qty
			if u.Cart[productID] <= 0 {
				delete(u.Cart, productID)
			}
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return r.itemsLocked(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) SetQuantity(userID int, productID int, qty int, updatedAt string) ([]CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			if u.Cart == nil {
				u.Cart = make(map[int]int)
			}
			if qty < 1 {
				delete(u.Cart, productID)
			} else {
				u.Cart[productID] = qty
			}
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return r.itemsLocked(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) RemoveItem(userID int, productID int, updatedAt string) ([]CartItem, error) {
	return r.SetQuantity(userID, productID, 0, updatedAt)
}

func (r *InMemoryRepository) GetCart(userID int) ([]CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == userID {
			return r.itemsLocked(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) ClearCart(userID int, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			u.Cart = make(map[int]int)
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) itemsLocked(u user.User) []CartItem {
	items := make([]CartItem, 0, len(u.Cart))
	for pid, q := range u.Cart {
		summary, ok := r.catalog[pid]
		if !ok {
			summary = product.Summary{ProductID: pid}
		}
		items = append(items, CartItem{Summary: summary, Quantity: q})
	}
	// same ordering as the postgres repository's enrichment query
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}
