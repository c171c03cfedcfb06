package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/pkg/errors"
	"chronova/pkg/logger"
)

const maxResponseBytes = 16 << 20

// Client reads the catalog from a remote storefront backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ repository.CatalogReader = (*Client)(nil)

func (c *Client) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var dtos []productDTO
	if err := c.get(ctx, "/products", &dtos); err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toEntity())
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var dtos []categoryDTO
	if err := c.get(ctx, "/categories", &dtos); err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, &entity.Category{ID: dto.ID, Name: dto.Name, Slug: dto.Slug})
	}
	return categories, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	var dtos []brandDTO
	if err := c.get(ctx, "/brands", &dtos); err != nil {
		return nil, err
	}

	brands := make([]*entity.Brand, 0, len(dtos))
	for _, dto := range dtos {
		brands = append(brands, &entity.Brand{ID: dto.ID, Name: dto.Name, LogoURL: dto.LogoURL})
	}
	return brands, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Internal("Failed to build catalog request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.CatalogUnavailable("Catalog service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.CatalogUnavailable("Failed to read catalog response", err)
	}
	logger.Debug("catalog GET %s -> %d in %s", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.CatalogUnavailable(
			"Catalog service returned an error",
			fmt.Errorf("GET %s: status %d", path, resp.StatusCode),
		)
	}

	if err := json.Unmarshal(unwrapEnvelope(body), out); err != nil {
		return errors.CatalogUnavailable("Failed to decode catalog response", fmt.Errorf("GET %s: %w", path, err))
	}
	return nil
}
