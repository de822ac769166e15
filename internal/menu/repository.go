package menu

import "context"

// Repository defines all database operations for the menu catalog.
// The catalog is a read-only snapshot; the storefront never writes it.
type Repository interface {
	GetCatalog(ctx context.Context) (*Catalog, error)
	GetItem(ctx context.Context, itemID string) (*Item, error)
}
