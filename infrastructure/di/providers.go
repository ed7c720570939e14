package di

import (
	"go.uber.org/zap"

	"storefront/application/checkout"
	"storefront/application/ports"
	"storefront/application/search"
	"storefront/application/store"
	"storefront/infrastructure/config"
	"storefront/infrastructure/gateway"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideGateway creates the HTTP client for the catalog service
func ProvideGateway(cfg *config.Config, logger *zap.Logger) ports.CatalogGateway {
	return gateway.NewClient(cfg.ServiceURL, cfg.RequestTimeout, logger)
}

// ProvideStore creates the storefront state store
func ProvideStore(logger *zap.Logger) *store.Store {
	return store.New(logger)
}

// ProvideSearcher creates the debounced remote searcher
func ProvideSearcher(gw ports.CatalogGateway, st *store.Store, cfg *config.Config, logger *zap.Logger) *search.Searcher {
	return search.New(gw, st, cfg.SearchDebounce, logger)
}

// ProvideOrchestrator creates the checkout orchestrator
func ProvideOrchestrator(gw ports.CatalogGateway, st *store.Store, logger *zap.Logger) *checkout.Orchestrator {
	return checkout.New(gw, st, logger)
}
