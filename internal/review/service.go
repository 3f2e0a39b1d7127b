package review

import (
	"time"

	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

// Service provides business logic for product reviews.
type Service struct {
	repo     Repository
	products product.ServiceInterface
	users    user.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface, users user.ServiceInterface) *Service {
	return &Service{repo: repo, products: products, users: users}
}

func (s *Service) ListByProduct(productID int) ([]Review, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(productID)
}

// Create stores a review against an existing product. The reviewer name is
// taken from the account so reviews cannot be signed as someone else.
func (s *Service) Create(rv Review) (Review, error) {
	if rv.Score < 1 || rv.Score > 5 {
		return Review{}, ErrInvalidScore
	}
	if _, err := s.products.GetByID(rv.ProductID); err != nil {
		return Review{}, err
	}

	if s.users != nil {
		if u, err := s.users.GetByID(rv.UserID); err == nil {
			rv.ReviewerName = u.FullName()
		}
	}
	if rv.CreatedAt == "" {
		rv.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Create(rv)
}

func (s *Service) AverageScore(productID int) (float64, error) {
	return s.repo.AverageScore(productID)
}
