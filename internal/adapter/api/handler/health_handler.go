package handler

import (
	"context"
	"net/http"
	"time"

	"chronova/internal/usecase"
	"chronova/pkg/errors"
	"chronova/pkg/response"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewHealthHandler(collectionUseCase *usecase.CollectionUseCase) *HealthHandler {
	return &HealthHandler{
		collectionUseCase: collectionUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckCatalogHealth reads the smallest catalog collection to prove the
// Catalog Service answers.
func (h *HealthHandler) CheckCatalogHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.collectionUseCase.ListBrands(ctx); err != nil {
		if !errors.Is(err, "CATALOG_UNAVAILABLE") {
			err = errors.CatalogUnavailable("Catalog service unreachable", err)
		}
		return response.Error(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "catalog reachable",
	})
}
