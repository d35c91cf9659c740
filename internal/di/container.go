// Package di provides dependency injection configuration for the Estante server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/estanteapp/estante-server/internal/config"
	"github.com/estanteapp/estante-server/internal/di/providers"
	"github.com/estanteapp/estante-server/internal/logger"
	"github.com/estanteapp/estante-server/internal/metadata"
	"github.com/estanteapp/estante-server/internal/metadata/googlebooks"
	"github.com/estanteapp/estante-server/internal/metadata/openlibrary"
	"github.com/estanteapp/estante-server/internal/service"
	"github.com/estanteapp/estante-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideOpenLibraryClient)
	do.Provide(injector, providers.ProvideGoogleBooksClient)
	do.Provide(injector, providers.ProvideResolver)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideCatalogService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*openlibrary.Client](injector)
	_ = do.MustInvoke[*googlebooks.Client](injector)
	_ = do.MustInvoke[*metadata.Resolver](injector)

	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
