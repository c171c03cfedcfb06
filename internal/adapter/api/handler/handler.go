package handler

import (
	"chronova/internal/infrastructure/ratelimit"
	"chronova/internal/infrastructure/websocket"
	"chronova/internal/usecase"
)

var (
	productHandler    *ProductHandler
	catalogHandler    *CatalogHandler
	collectionHandler *CollectionHandler
	liveHandler       *LiveCollectionHandler
	healthHandler     *HealthHandler
)

func Setup(
	collectionUseCase *usecase.CollectionUseCase,
	wsManager *websocket.Manager,
	limiter *ratelimit.RateLimiter,
) {
	productHandler = NewProductHandler(collectionUseCase)
	catalogHandler = NewCatalogHandler(collectionUseCase)
	collectionHandler = NewCollectionHandler(collectionUseCase)
	liveHandler = NewLiveCollectionHandler(collectionUseCase, wsManager, limiter)
	healthHandler = NewHealthHandler(collectionUseCase)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetCollectionHandler() *CollectionHandler {
	return collectionHandler
}

func GetLiveCollectionHandler() *LiveCollectionHandler {
	return liveHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
