package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/estanteapp/estante-server/internal/config"
	"github.com/estanteapp/estante-server/internal/logger"
	"github.com/estanteapp/estante-server/internal/metadata"
	"github.com/estanteapp/estante-server/internal/service"
	"github.com/estanteapp/estante-server/internal/web"
)

// devSessionSecret signs cookies when no secret is configured. Config
// validation rejects this fallback in production.
const devSessionSecret = "estante-dev-secret"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	resolver := do.MustInvoke[*metadata.Resolver](i)

	secret := cfg.Session.Secret
	if secret == "" {
		secret = devSessionSecret
	}

	handler, err := web.NewServer(catalog, resolver, secret, log.Logger)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
