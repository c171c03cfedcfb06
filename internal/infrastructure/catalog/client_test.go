package catalog

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronova/internal/domain/entity"
	"chronova/pkg/errors"
)

func newCatalogServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListProducts_Envelope(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"/api/products": `{"success": true, "data": [
			{"id": 1, "category_id": 2, "brand_id": "7", "name": "Seamaster", "price": "1500000.00", "sold_count": 12, "created_at": "2024-01-01T10:00:00.000000Z"},
			{"id": "2", "category_id": "2", "brand_id": 7, "name": "Speedmaster", "price": 990000, "sold_count": null, "created_at": "2024-02-01 08:30:00"},
			{"id": 3, "category_id": 3, "brand_id": 8, "name": "Oyster", "price": 75, "created_at": 1709251200}
		]}`,
	})

	client := NewClient(srv.URL+"/api", time.Second)
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, entity.RefID("1"), products[0].ID)
	assert.Equal(t, entity.RefID("2"), products[0].CategoryID)
	assert.Equal(t, entity.RefID("7"), products[0].BrandID)
	assert.Equal(t, 1500000.0, products[0].Price)
	assert.Equal(t, 12, products[0].SoldCount)
	assert.Equal(t, 2024, products[0].CreatedAt.Year())

	assert.Equal(t, entity.RefID("7"), products[1].BrandID)
	assert.Equal(t, 0, products[1].SoldCount)
	assert.Equal(t, 8, products[1].CreatedAt.Hour())

	assert.Equal(t, 0, products[2].SoldCount)
	assert.Equal(t, time.Unix(1709251200, 0).UTC(), products[2].CreatedAt)
}

func TestClient_ListCategoriesAndBrands_BareArray(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"/categories": `[{"id": 1, "name": "Dress"}, {"id": 2, "name": "Diver", "slug": "diver"}]`,
		"/brands":     `{"data": {"current_page": 1, "data": [{"id": 7, "name": "Omega"}]}}`,
	})

	client := NewClient(srv.URL, time.Second)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, entity.RefID("2"), categories[1].ID)
	assert.Equal(t, "diver", categories[1].Slug)

	brands, err := client.ListBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Omega", brands[0].Name)
}

func TestClient_MalformedNumbersAreAbsent(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"/products": `[{"id": 9, "price": "", "sold_count": "many", "created_at": "soon"}]`,
	})

	products, err := NewClient(srv.URL, time.Second).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, 0.0, products[0].Price)
	assert.Equal(t, 0, products[0].SoldCount)
	assert.True(t, products[0].CreatedAt.IsZero())
}

func TestClient_StatusError(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{})

	_, err := NewClient(srv.URL, time.Second).ListProducts(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, "CATALOG_UNAVAILABLE"))
}

func TestClient_DecodeError(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"/brands": `{"data": "maintenance"}`,
	})

	_, err := NewClient(srv.URL, time.Second).ListBrands(context.Background())

	assert.True(t, errors.Is(err, "CATALOG_UNAVAILABLE"))
}

func TestClient_Unreachable(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{})
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).ListCategories(context.Background())

	assert.True(t, errors.Is(err, "CATALOG_UNAVAILABLE"))
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{"/products": `[]`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).ListProducts(ctx)

	assert.Error(t, err)
}

func TestUnwrapEnvelope(t *testing.T) {
	assert.Equal(t, `[1]`, string(unwrapEnvelope([]byte(` [1] `))))
	assert.Equal(t, `[1]`, string(unwrapEnvelope([]byte(`{"data":[1]}`))))
	assert.Equal(t, `{"data":null}`, string(unwrapEnvelope([]byte(`{"data":null}`))))
	assert.Equal(t, `[2]`, string(unwrapEnvelope([]byte(`{"data":{"data":[2]}}`))))
}

func TestWireNumber_IntIsClamped(t *testing.T) {
	cases := map[string]int{
		`12`:      12,
		`"7.9"`:   7,
		`1e30`:    math.MaxInt,
		`"-1e30"`: math.MinInt,
		`null`:    0,
		`"lots"`:  0,
	}

	for raw, want := range cases {
		var n wireNumber
		require.NoError(t, json.Unmarshal([]byte(raw), &n))
		assert.Equal(t, want, n.Int(), "sold_count %s", raw)
	}
}

func TestClient_HugeSoldCountStaysBounded(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"/products": `[{"id": 1, "price": 10, "sold_count": 1e30}]`,
	})

	products, err := NewClient(srv.URL, time.Second).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, math.MaxInt, products[0].SoldCount)
}
