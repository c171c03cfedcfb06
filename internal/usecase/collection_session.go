package usecase

import (
	"context"
	"sync"

	"chronova/internal/domain/entity"
)

// CollectionSession owns the mutable state behind one open collection page:
// the catalog snapshot, the shopper's filters and the loading flag. Every
// change re-runs the pipeline and hands back a fresh view.
type CollectionSession struct {
	mu      sync.Mutex
	catalog *Catalog
	loaded  bool
	failed  bool
	filters entity.FilterState
}

func NewCollectionSession() *CollectionSession {
	return &CollectionSession{
		filters: entity.DefaultFilterState(),
	}
}

// Load fetches the catalog once. Filters set while the fetch is outstanding
// are kept and applied to the loaded products.
func (s *CollectionSession) Load(ctx context.Context, uc *CollectionUseCase) (CollectionView, error) {
	snapshot, err := uc.LoadCatalog(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	if err != nil {
		s.failed = true
		return s.viewLocked(), err
	}
	s.catalog = snapshot
	return s.viewLocked(), nil
}

func (s *CollectionSession) SetFilters(input entity.FilterInput) CollectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = input.State()
	return s.viewLocked()
}

func (s *CollectionSession) Clear() CollectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters.Clear()
	return s.viewLocked()
}

func (s *CollectionSession) View() CollectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

func (s *CollectionSession) Filters() entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters
}

// Catalog returns the loaded snapshot, or nil while loading or after a
// failed load.
func (s *CollectionSession) Catalog() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog
}

func (s *CollectionSession) viewLocked() CollectionView {
	switch {
	case !s.loaded:
		return loadingView(s.filters)
	case s.failed:
		return failedView(s.filters)
	default:
		return NewCollectionView(s.catalog.Products, s.filters)
	}
}
