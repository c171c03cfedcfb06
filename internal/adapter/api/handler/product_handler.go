package handler

import (
	"chronova/internal/usecase"
	"chronova/pkg/response"
	"chronova/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewProductHandler(collectionUseCase *usecase.CollectionUseCase) *ProductHandler {
	return &ProductHandler{
		collectionUseCase: collectionUseCase,
	}
}

// ListProducts pages through the raw catalog, newest first.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.collectionUseCase.ListProducts(
		c.Request().Context(),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}
