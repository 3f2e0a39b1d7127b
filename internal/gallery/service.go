package gallery

// Service provides business logic for the gallery.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit gallery items, highest ord first.
func (s *Service) List(limit int) []Item {
	items, err := s.repo.List(limit)
	if err != nil {
		return []Item{}
	}
	return items
}

func (s *Service) Create(item Item) (Item, error) {
	return s.repo.Create(item)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
