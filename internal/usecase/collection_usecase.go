package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/internal/domain/service"
	"chronova/pkg/logger"
)

// Catalog is one snapshot of the Catalog Service collections.
type Catalog struct {
	Products   []*entity.Product  `json:"products"`
	Categories []*entity.Category `json:"categories"`
	Brands     []*entity.Brand    `json:"brands"`
}

// CollectionView is what the storefront renders for the collection page.
// Empty is only set once loading finished without error and nothing matched,
// so "still fetching" and "zero matches" never look alike.
type CollectionView struct {
	Products   []*entity.Product  `json:"products"`
	Count      int                `json:"count"`
	Empty      bool               `json:"empty"`
	Loading    bool               `json:"loading"`
	LoadFailed bool               `json:"load_failed"`
	Filters    entity.FilterState `json:"filters"`
}

func NewCollectionView(products []*entity.Product, filters entity.FilterState) CollectionView {
	result := service.Compute(products, filters)
	return CollectionView{
		Products: result,
		Count:    len(result),
		Empty:    len(result) == 0,
		Filters:  filters,
	}
}

func loadingView(filters entity.FilterState) CollectionView {
	return CollectionView{Products: []*entity.Product{}, Loading: true, Filters: filters}
}

func failedView(filters entity.FilterState) CollectionView {
	return CollectionView{Products: []*entity.Product{}, LoadFailed: true, Filters: filters}
}

type CollectionUseCase struct {
	catalog repository.CatalogReader
}

func NewCollectionUseCase(catalog repository.CatalogReader) *CollectionUseCase {
	return &CollectionUseCase{
		catalog: catalog,
	}
}

// LoadCatalog fetches products, categories and brands concurrently. The first
// failure cancels the other fetches and is returned as is.
func (uc *CollectionUseCase) LoadCatalog(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	snapshot := &Catalog{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := uc.catalog.ListProducts(gctx)
		if err != nil {
			return err
		}
		snapshot.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := uc.catalog.ListCategories(gctx)
		if err != nil {
			return err
		}
		snapshot.Categories = categories
		return nil
	})
	g.Go(func() error {
		brands, err := uc.catalog.ListBrands(gctx)
		if err != nil {
			return err
		}
		snapshot.Brands = brands
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to load catalog: %v", err)
		return nil, err
	}

	logger.Debug("Catalog loaded: %d products, %d categories, %d brands in %s",
		len(snapshot.Products), len(snapshot.Categories), len(snapshot.Brands), time.Since(start))
	return snapshot, nil
}

// Browse loads the product list and applies filters to it.
func (uc *CollectionUseCase) Browse(ctx context.Context, filters entity.FilterState) (CollectionView, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return failedView(filters), err
	}
	return NewCollectionView(products, filters), nil
}

// ListProducts pages through the catalog newest first.
func (uc *CollectionUseCase) ListProducts(ctx context.Context, page, limit int) ([]*entity.Product, int64, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	ordered := service.Compute(products, entity.DefaultFilterState())
	total := int64(len(ordered))

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		if page > 1 {
			return []*entity.Product{}, total, nil
		}
		return ordered, total, nil
	}
	// compare in page units first so (page-1)*limit cannot overflow
	if page-1 > len(ordered)/limit {
		return []*entity.Product{}, total, nil
	}

	offset := (page - 1) * limit
	if offset >= len(ordered) {
		return []*entity.Product{}, total, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}

	return ordered[offset:end], total, nil
}

func (uc *CollectionUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.catalog.ListCategories(ctx)
}

func (uc *CollectionUseCase) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	return uc.catalog.ListBrands(ctx)
}
