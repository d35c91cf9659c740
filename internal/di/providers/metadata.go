package providers

import (
	"github.com/samber/do/v2"

	"github.com/estanteapp/estante-server/internal/config"
	"github.com/estanteapp/estante-server/internal/logger"
	"github.com/estanteapp/estante-server/internal/metadata"
	"github.com/estanteapp/estante-server/internal/metadata/googlebooks"
	"github.com/estanteapp/estante-server/internal/metadata/openlibrary"
)

// ProvideOpenLibraryClient provides the OpenLibrary metadata client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return openlibrary.New(cfg.Providers.OpenLibraryURL, log.Logger), nil
}

// ProvideGoogleBooksClient provides the Google Books metadata client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return googlebooks.New(cfg.Providers.GoogleBooksURL, log.Logger), nil
}

// ProvideResolver provides the merged metadata resolver. OpenLibrary
// results take priority over Google Books.
func ProvideResolver(i do.Injector) (*metadata.Resolver, error) {
	openLibrary := do.MustInvoke[*openlibrary.Client](i)
	googleBooks := do.MustInvoke[*googlebooks.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return metadata.NewResolver(openLibrary, googleBooks, log.Logger), nil
}
