package menu

import (
	"context"
	"errors"
)

type InMemoryRepository struct {
	catalog *Catalog
}

func NewInMemoryRepository(catalog *Catalog) *InMemoryRepository {
	return &InMemoryRepository{catalog: catalog}
}

func (r *InMemoryRepository) GetCatalog(ctx context.Context) (*Catalog, error) {
	return r.catalog, nil
}

func (r *InMemoryRepository) GetItem(ctx context.Context, itemID string) (*Item, error) {
	for i := range r.catalog.Items {
		if r.catalog.Items[i].ID == itemID {
			return &r.catalog.Items[i], nil
		}
	}
	return nil, errors.New("menu item not found")
}
