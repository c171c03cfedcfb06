package router

import (
	"chronova/internal/adapter/api/handler"
	"chronova/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

const ActionCatalogRead = "catalog_read"

func SetupCatalogRouter(e *echo.Echo, rateLimit *middleware.RateLimitMiddleware) {
	productHandler := handler.GetProductHandler()
	catalogHandler := handler.GetCatalogHandler()

	v1 := e.Group("/v1")
	v1.Use(rateLimit.Limit(ActionCatalogRead))
	v1.GET("/products", productHandler.ListProducts)
	v1.GET("/categories", catalogHandler.ListCategories)
	v1.GET("/brands", catalogHandler.ListBrands)
}
