package address

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrIncomplete = errors.New("line, city and postalCode are required")
)

// Service provides business logic for saved delivery addresses.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.List(userID)
}

func (s *Service) Create(a Address) (Address, error) {
	if err := validate(a); err != nil {
		return Address{}, err
	}
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	return s.repo.Create(a)
}

func (s *Service) Update(a Address) (Address, error) {
	if err := validate(a); err != nil {
		return Address{}, err
	}
	a.UpdatedAt = now()
	return s.repo.Update(a)
}

func (s *Service) Delete(userID int, addressID int) error {
	return s.repo.Delete(userID, addressID)
}

func validate(a Address) error {
	if strings.TrimSpace(a.Line) == "" || strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.PostalCode) == "" {
		return ErrIncomplete
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
