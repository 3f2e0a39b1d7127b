package wishlist

import (
	"errors"
	"sync"

	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyAdded = errors.New("product already on wishlist")
	ErrNotOnList    = errors.New("product not on wishlist")
)

// Repository provides access to wishlist operations. The wishlist is an
// ordered array of product ids on the user row.
type Repository interface {
	Add(userID int, productID int, updatedAt string) ([]int, error)
	Remove(userID int, productID int, updatedAt string) ([]int, error)
	Get(userID int) ([]product.Summary, error)
}

// InMemoryRepository is used for tests and local scenarios.
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

func (r *InMemoryRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			for _, pid := range u.WishlistProductIDs {
				if pid == productID {
					return nil, ErrAlreadyAdded
				}
			}
			u.WishlistProductIDs = append(u.WishlistProductIDs, productID)
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			out := make([]int, len(u.WishlistProductIDs))
			copy(out, u.WishlistProductIDs)
			return out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			found := false
			kept := make([]int, 0, len(u.WishlistProductIDs))
			for _, pid := range u.WishlistProductIDs {
				if pid == productID {
					found = true
					continue
				}
				kept = append(kept, pid)
			}
			if !found {
				return nil, ErrNotOnList
			}
			u.WishlistProductIDs = kept
			if updatedAt != "" {
				u.UpdatedAt = updatedAt
			}
			r.users[i] = u
			out := make([]int, len(kept))
			copy(out, kept)
			return out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Get(userID int) ([]product.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == userID {
			out := make([]product.Summary, 0, len(u.WishlistProductIDs))
			for _, pid := range u.WishlistProductIDs {
				summary, ok := r.catalog[pid]
				if !ok {
					summary = product.Summary{ProductID: pid}
				}
				out = append(out, summary)
			}
			return out, nil
		}
	}
	return nil, ErrNotFound
}
