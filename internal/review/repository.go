package review

import (
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// Repository persists reviews and keeps the product's average score current.
type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	Create(r Review) (Review, error)
	AverageScore(productID int) (float64, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, rv := range seed {
		r.storage = append(r.storage, rv)
		if rv.ReviewID > maxID {
			maxID = rv.ReviewID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Review{}
	for _, rv := range r.storage {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ReviewID = r.nextID
	r.nextID++
	r.storage = append(r.storage, rv)
	return rv, nil
}

func (r *InMemoryRepository) AverageScore(productID int) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum, n := 0, 0
	for _, rv := range r.storage {
		if rv.ProductID == productID {
			sum += rv.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}
