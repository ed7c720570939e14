package di

import (
	"go.uber.org/zap"

	"storefront/application/checkout"
	"storefront/application/ports"
	"storefront/application/search"
	"storefront/application/store"
	"storefront/infrastructure/config"
)

// Container holds all storefront client dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Gateway  ports.CatalogGateway
	Store    *store.Store
	Searcher *search.Searcher
	Checkout *checkout.Orchestrator
}
