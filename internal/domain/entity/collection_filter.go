package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortMostSold  SortMode = "sold-desc"
)

// ParseSortMode maps wire values (and their long spellings) to a SortMode.
// Anything unrecognized is newest.
func ParseSortMode(raw string) SortMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price-asc", "price-ascending":
		return SortPriceAsc
	case "price-desc", "price-descending":
		return SortPriceDesc
	case "sold-desc", "most-sold":
		return SortMostSold
	default:
		return SortNewest
	}
}

// FilterState is the set of user-selected constraints on the collection.
// Empty ids and nil bounds mean "no constraint".
type FilterState struct {
	Category RefID    `json:"category,omitempty"`
	Brand    RefID    `json:"brand,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Sort     SortMode `json:"sort"`
}

func DefaultFilterState() FilterState {
	return FilterState{Sort: SortNewest}
}

// Clear resets every field to its default.
func (f *FilterState) Clear() {
	*f = DefaultFilterState()
}

func (f FilterState) IsDefault() bool {
	return f.Category == "" && f.Brand == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		ParseSortMode(string(f.Sort)) == SortNewest
}

// FilterInput is the text form of a FilterState as it arrives from query
// strings, websocket messages and CLI flags.
type FilterInput struct {
	Category string `json:"category" query:"category" validate:"max=128"`
	Brand    string `json:"brand" query:"brand" validate:"max=128"`
	MinPrice string `json:"min_price" query:"min_price" validate:"max=64"`
	MaxPrice string `json:"max_price" query:"max_price" validate:"max=64"`
	Sort     string `json:"sort" query:"sort" validate:"max=32"`
}

// State normalizes the input. Price bounds that are not numbers are dropped.
func (in FilterInput) State() FilterState {
	return FilterState{
		Category: NewRefID(in.Category),
		Brand:    NewRefID(in.Brand),
		MinPrice: ParsePriceBound(in.MinPrice),
		MaxPrice: ParsePriceBound(in.MaxPrice),
		Sort:     ParseSortMode(in.Sort),
	}
}

// ParsePriceBound parses a price bound typed by a shopper. Blank or
// non-numeric text yields nil.
func ParsePriceBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}
