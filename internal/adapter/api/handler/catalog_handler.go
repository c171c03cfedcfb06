package handler

import (
	"chronova/internal/usecase"
	"chronova/pkg/response"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCatalogHandler(collectionUseCase *usecase.CollectionUseCase) *CatalogHandler {
	return &CatalogHandler{
		collectionUseCase: collectionUseCase,
	}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.collectionUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, categories)
}

func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.collectionUseCase.ListBrands(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, brands)
}
