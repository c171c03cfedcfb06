package router

import (
	"chronova/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, rateLimit *middleware.RateLimitMiddleware) {
	SetupCatalogRouter(e, rateLimit)
	SetupCollectionRouter(e, rateLimit)
	SetupHealthRouter(e)
}
