package service

import (
	"cmp"
	"slices"

	"chronova/internal/domain/entity"
)

type productPredicate func(p *entity.Product) bool

// Compute derives the displayed collection from the full product list.
//
// Filters run in a fixed order (category, brand, min price, max price) and
// the survivors are stably sorted by filters.Sort. The input slice is never
// reordered or modified; the result is always a new slice holding a subset of
// the input pointers.
func Compute(products []*entity.Product, filters entity.FilterState) []*entity.Product {
	predicates := buildPredicates(filters)

	result := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if matchesAll(p, predicates) {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, comparatorFor(filters.Sort))
	return result
}

func buildPredicates(filters entity.FilterState) []productPredicate {
	var predicates []productPredicate

	if category := filters.Category; category != "" {
		predicates = append(predicates, func(p *entity.Product) bool {
			return p.CategoryID == category
		})
	}

	if brand := filters.Brand; brand != "" {
		predicates = append(predicates, func(p *entity.Product) bool {
			return p.BrandID == brand
		})
	}

	if filters.MinPrice != nil {
		lower := *filters.MinPrice
		predicates = append(predicates, func(p *entity.Product) bool {
			return p.Price >= lower
		})
	}

	if filters.MaxPrice != nil {
		upper := *filters.MaxPrice
		predicates = append(predicates, func(p *entity.Product) bool {
			return p.Price <= upper
		})
	}

	return predicates
}

func matchesAll(p *entity.Product, predicates []productPredicate) bool {
	for _, keep := range predicates {
		if !keep(p) {
			return false
		}
	}
	return true
}

func comparatorFor(mode entity.SortMode) func(a, b *entity.Product) int {
	switch entity.ParseSortMode(string(mode)) {
	case entity.SortPriceAsc:
		return func(a, b *entity.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case entity.SortPriceDesc:
		return func(a, b *entity.Product) int {
			return cmp.Compare(b.Price, a.Price)
		}
	case entity.SortMostSold:
		return func(a, b *entity.Product) int {
			return cmp.Compare(b.SoldCount, a.SoldCount)
		}
	default:
		return func(a, b *entity.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}
