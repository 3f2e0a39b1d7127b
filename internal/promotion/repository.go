package promotion

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("promotion not found")
)

type Repository interface {
	List() ([]Promotion, error)
	Create(p Promotion) (Promotion, error)
	Delete(id int) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Promotion
	nextID  int
}

func NewInMemoryRepository(seed []Promotion) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.PromoID > maxID {
			maxID = p.PromoID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Promotion, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Create(p Promotion) (Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.PromoID == 0 {
		p.PromoID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].PromoID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
