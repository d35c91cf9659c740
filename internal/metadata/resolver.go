package metadata

import (
	"context"
	"log/slog"

	"github.com/estanteapp/estante-server/internal/cache"
)

// resolverCacheSize bounds the number of memoized resolutions.
const resolverCacheSize = 100

// Provider is an external bibliographic source. Lookup is best-effort:
// network failures, timeouts, and malformed responses yield an empty
// Record, never an error.
type Provider interface {
	Lookup(ctx context.Context, title string) Record
	ClearCache()
}

// Resolver combines two providers into a single cached lookup.
// The primary provider's fields take precedence over the secondary's.
type Resolver struct {
	primary   Provider
	secondary Provider
	cache     *cache.LRU[*Record]
	logger    *slog.Logger
}

// NewResolver creates a resolver over the given providers.
func NewResolver(primary, secondary Provider, logger *slog.Logger) *Resolver {
	return &Resolver{
		primary:   primary,
		secondary: secondary,
		cache:     cache.New[*Record](resolverCacheSize),
		logger:    logger,
	}
}

// Resolve returns the merged metadata for a raw title, or nil when nothing
// was found. The merged record's Title falls back to the input title when
// neither provider supplies one. Results (including nothing-found) are
// memoized by raw title until InvalidateAll is called or the entry is
// evicted.
//
// A panic during resolution is recovered, logged, and reported as nil.
func (r *Resolver) Resolve(ctx context.Context, title string) (rec *Record) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("metadata resolution failed",
				"title", title,
				"panic", p,
			)
			rec = nil
		}
	}()

	if cached, ok := r.cache.Get(title); ok {
		return cached
	}

	a := r.primary.Lookup(ctx, title)
	b := r.secondary.Lookup(ctx, title)

	// A record carrying nothing but the echoed-back input title is not
	// a result; report it as nothing-found.
	if a.IsEmpty() && b.IsEmpty() {
		r.logger.Debug("no metadata found", "title", title)
		r.cache.Add(title, nil)
		return nil
	}

	merged := Merge(a, b)
	if merged.Title == "" {
		merged.Title = title
	}

	r.cache.Add(title, &merged)
	return &merged
}

// InvalidateAll clears the resolver cache and both provider caches
// together, forcing the next Resolve to hit the live services.
func (r *Resolver) InvalidateAll() {
	r.cache.Clear()
	r.primary.ClearCache()
	r.secondary.ClearCache()
}
