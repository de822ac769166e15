package menu

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Catalog snapshot (validated on every load)
// --------------------------------------------------
func (s *Service) GetCatalog(ctx context.Context) (*Catalog, error) {
	catalog, err := s.repo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

// --------------------------------------------------
// Single item lookup
// --------------------------------------------------
func (s *Service) GetItem(ctx context.Context, itemID string) (*Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	return item, nil
}
