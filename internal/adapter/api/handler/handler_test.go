package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronova/internal/adapter/api"
	"chronova/internal/domain/entity"
	"chronova/internal/usecase"
	"chronova/pkg/errors"
)

type stubCatalog struct {
	products []*entity.Product
	err      error
}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.Category{{ID: "1", Name: "Dress"}, {ID: "2", Name: "Diver"}}, nil
}

func (s *stubCatalog) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.Brand{{ID: "7", Name: "Omega"}}, nil
}

func newStubCatalog() *stubCatalog {
	at := entity.ParseTimestamp
	return &stubCatalog{products: []*entity.Product{
		{ID: "1", CategoryID: "1", BrandID: "7", Name: "Aqua Terra", Price: 100, CreatedAt: at("2024-01-01")},
		{ID: "2", CategoryID: "2", BrandID: "7", Name: "Seamaster", Price: 50, SoldCount: 4, CreatedAt: at("2024-02-01")},
		{ID: "3", CategoryID: "1", BrandID: "8", Name: "Presage", Price: 75, SoldCount: 9, CreatedAt: at("2024-03-01")},
	}}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func serve(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func newTestEcho(catalog *stubCatalog) *echo.Echo {
	uc := usecase.NewCollectionUseCase(catalog)
	e := echo.New()
	e.Validator = api.NewValidator()

	collection := NewCollectionHandler(uc)
	products := NewProductHandler(uc)
	catalogH := NewCatalogHandler(uc)
	health := NewHealthHandler(uc)

	e.GET("/v1/collection", collection.Browse)
	e.GET("/v1/products", products.ListProducts)
	e.GET("/v1/categories", catalogH.ListCategories)
	e.GET("/v1/brands", catalogH.ListBrands)
	e.GET("/health", health.CheckHealth)
	e.GET("/health/catalog", health.CheckCatalogHealth)
	return e
}

func decodeView(t *testing.T, raw json.RawMessage) usecase.CollectionView {
	t.Helper()
	var view usecase.CollectionView
	require.NoError(t, json.Unmarshal(raw, &view))
	return view
}

func viewIDs(view usecase.CollectionView) []string {
	out := make([]string, len(view.Products))
	for i, p := range view.Products {
		out[i] = p.ID.String()
	}
	return out
}

func TestBrowse_Default(t *testing.T) {
	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/collection")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, body.Data)
	assert.Equal(t, []string{"3", "2", "1"}, viewIDs(view))
	assert.Equal(t, 3, view.Count)
	assert.False(t, view.Empty)
	assert.Equal(t, entity.SortNewest, view.Filters.Sort)
}

func TestBrowse_FiltersAndSort(t *testing.T) {
	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/collection?category=1&min_price=80&sort=price-desc")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, body.Data)
	assert.Equal(t, []string{"1"}, viewIDs(view))
}

func TestBrowse_MalformedPriceIsIgnored(t *testing.T) {
	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/collection?min_price=cheap&sort=price-asc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"2", "3", "1"}, viewIDs(decodeView(t, body.Data)))
}

func TestBrowse_NoMatches(t *testing.T) {
	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/collection?min_price=500&max_price=100")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, body.Data)
	assert.True(t, view.Empty)
	assert.Equal(t, 0, view.Count)
}

func TestBrowse_TooLongQueryIsRejected(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/collection?category="+string(long))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestBrowse_CatalogDown(t *testing.T) {
	catalog := newStubCatalog()
	catalog.err = errors.CatalogUnavailable("Catalog service unreachable", stderrors.New("refused"))

	rec, body := serve(t, newTestEcho(catalog), "/v1/collection")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "CATALOG_UNAVAILABLE", body.Error.Code)
}

func TestListProducts_Paginated(t *testing.T) {
	rec, body := serve(t, newTestEcho(newStubCatalog()), "/v1/products?page=1&limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []*entity.Product `json:"items"`
		Total      int64             `json:"total"`
		TotalPages int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestCategoriesAndBrands(t *testing.T) {
	e := newTestEcho(newStubCatalog())

	rec, body := serve(t, e, "/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []*entity.Category
	require.NoError(t, json.Unmarshal(body.Data, &categories))
	assert.Len(t, categories, 2)

	rec, body = serve(t, e, "/v1/brands")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), "Omega")
}

func TestHealth(t *testing.T) {
	healthy := newTestEcho(newStubCatalog())
	rec, _ := serve(t, healthy, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = serve(t, healthy, "/health/catalog")
	assert.Equal(t, http.StatusOK, rec.Code)

	catalog := newStubCatalog()
	catalog.err = stderrors.New("down")
	rec, body := serve(t, newTestEcho(catalog), "/health/catalog")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CATALOG_UNAVAILABLE", body.Error.Code)
}
