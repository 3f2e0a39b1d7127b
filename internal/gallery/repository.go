package gallery

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("gallery item not found")
)

// Repository provides access to gallery items.
type Repository interface {
	List(limit int) ([]Item, error)
	Create(item Item) (Item, error)
	Delete(id int) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Item
	nextID  int
}

func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, item := range seed {
		r.storage = append(r.storage, item)
		if item.GalleryID > maxID {
			maxID = item.GalleryID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(limit int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.storage))
	copy(out, r.storage)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ord != out[j].Ord {
			return out[i].Ord > out[j].Ord
		}
		return out[i].GalleryID < out[j].GalleryID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Create(item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.GalleryID = r.nextID
	r.nextID++
	r.storage = append(r.storage, item)
	return item, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].GalleryID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
