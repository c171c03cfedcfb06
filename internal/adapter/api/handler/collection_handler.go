package handler

import (
	"chronova/internal/domain/entity"
	"chronova/internal/usecase"
	"chronova/pkg/errors"
	"chronova/pkg/response"

	"github.com/labstack/echo/v4"
)

type CollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCollectionHandler(collectionUseCase *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
	}
}

// Browse returns the filtered, sorted collection for
// ?category=&brand=&min_price=&max_price=&sort=. Malformed price bounds and
// unknown sort modes never fail the request.
func (h *CollectionHandler) Browse(c echo.Context) error {
	var input entity.FilterInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid query", err))
	}

	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	view, err := h.collectionUseCase.Browse(c.Request().Context(), input.State())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}
