package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortMode("price-asc"))
	assert.Equal(t, SortPriceAsc, ParseSortMode("Price-Ascending"))
	assert.Equal(t, SortPriceDesc, ParseSortMode("price-desc"))
	assert.Equal(t, SortMostSold, ParseSortMode("sold-desc"))
	assert.Equal(t, SortMostSold, ParseSortMode("most-sold"))
	assert.Equal(t, SortNewest, ParseSortMode("newest"))
	assert.Equal(t, SortNewest, ParseSortMode(""))
	assert.Equal(t, SortNewest, ParseSortMode("random"))
}

func TestParsePriceBound(t *testing.T) {
	v := ParsePriceBound(" 1500 ")
	require.NotNil(t, v)
	assert.Equal(t, 1500.0, *v)

	v = ParsePriceBound("99.5")
	require.NotNil(t, v)
	assert.Equal(t, 99.5, *v)

	v = ParsePriceBound("0")
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)

	assert.Nil(t, ParsePriceBound(""))
	assert.Nil(t, ParsePriceBound("abc"))
	assert.Nil(t, ParsePriceBound("NaN"))
	assert.Nil(t, ParsePriceBound("10 000"))
}

func TestFilterInput_State(t *testing.T) {
	state := FilterInput{
		Category: " 3 ",
		Brand:    "rolex",
		MinPrice: "100",
		MaxPrice: "nope",
		Sort:     "price-desc",
	}.State()

	assert.Equal(t, RefID("3"), state.Category)
	assert.Equal(t, RefID("rolex"), state.Brand)
	require.NotNil(t, state.MinPrice)
	assert.Equal(t, 100.0, *state.MinPrice)
	assert.Nil(t, state.MaxPrice)
	assert.Equal(t, SortPriceDesc, state.Sort)
}

func TestFilterState_Clear(t *testing.T) {
	min := 10.0
	state := FilterState{Category: "1", Brand: "2", MinPrice: &min, MaxPrice: &min, Sort: SortMostSold}
	assert.False(t, state.IsDefault())

	state.Clear()

	assert.Equal(t, DefaultFilterState(), state)
	assert.True(t, state.IsDefault())
	assert.True(t, FilterInput{}.State().IsDefault())
}
