package repository

import (
	"context"

	"chronova/internal/domain/entity"
)

// CatalogReader is the read side of the Catalog Service: the three
// collections a collection page loads once.
type CatalogReader interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
}
