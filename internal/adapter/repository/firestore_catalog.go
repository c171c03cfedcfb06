package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/pkg/errors"
)

// FirestoreCatalog serves the Catalog Service collections straight from
// Firestore.
type FirestoreCatalog struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Brands     repository.BrandRepository
}

func NewFirestoreCatalog(client *firestore.Client) *FirestoreCatalog {
	return &FirestoreCatalog{
		Products:   NewFirestoreProductRepository(client),
		Categories: NewFirestoreCategoryRepository(client),
		Brands:     NewFirestoreBrandRepository(client),
	}
}

var _ repository.CatalogReader = (*FirestoreCatalog)(nil)

func (c *FirestoreCatalog) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := c.Products.ListAll(ctx)
	return products, unavailable(err)
}

func (c *FirestoreCatalog) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := c.Categories.ListAll(ctx)
	return categories, unavailable(err)
}

func (c *FirestoreCatalog) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	brands, err := c.Brands.ListAll(ctx)
	return brands, unavailable(err)
}

// unavailable reports store failures the same way the HTTP client does, so
// callers see one error code whatever the catalog source.
func unavailable(err error) error {
	if err == nil || errors.Is(err, "CATALOG_UNAVAILABLE") {
		return err
	}
	return errors.CatalogUnavailable("Catalog store unreachable", err)
}
