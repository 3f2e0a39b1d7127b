package address

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("address not found")
)

// Repository provides access to saved addresses. Every operation is scoped
// by user so one customer can never touch another's addresses.
type Repository interface {
	List(userID int) ([]Address, error)
	Create(a Address) (Address, error)
	Update(a Address) (Address, error)
	Delete(userID int, addressID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Address
	nextID  int
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, a := range seed {
		r.storage = append(r.storage, a)
		if a.AddressID > maxID {
			maxID = a.AddressID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Address{}
	for _, a := range r.storage {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.AddressID = r.nextID
	r.nextID++
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Update(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.storage {
		if existing.AddressID == a.AddressID && existing.UserID == a.UserID {
			a.CreatedAt = existing.CreatedAt
			r.storage[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID int, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.storage {
		if a.AddressID == addressID && a.UserID == userID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
