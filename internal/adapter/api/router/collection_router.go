package router

import (
	"chronova/internal/adapter/api/handler"
	"chronova/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

const ActionBrowse = "browse"

func SetupCollectionRouter(e *echo.Echo, rateLimit *middleware.RateLimitMiddleware) {
	collectionHandler := handler.GetCollectionHandler()
	liveHandler := handler.GetLiveCollectionHandler()

	e.GET("/v1/collection", collectionHandler.Browse, rateLimit.Limit(ActionBrowse))
	// filter changes on the live socket are limited per frame inside the handler
	e.GET("/v1/collection/live", liveHandler.Connect, rateLimit.Limit(handler.ActionLiveConnect))
}
