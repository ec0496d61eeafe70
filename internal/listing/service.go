// Package listing contains the fetch orchestration layer: the cached
// fetch service, the per-session page orchestrator, the incremental load
// trigger and the session registry.
package listing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/cache"
	"github.com/vitrine-media/vitrine/internal/model"
	"github.com/vitrine-media/vitrine/internal/sources"
)

// Router is the source-router surface the service consumes.
type Router interface {
	Enabled(kind model.SourceKind) bool
	List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error)
}

// Service executes listing queries through the short-lived cache. It is
// the one place that decides cache eligibility and performs reads and
// writes; sessions and HTTP handlers both fetch through it.
type Service struct {
	router Router
	store  *cache.Store
	log    zerolog.Logger
}

// NewService creates a listing service over router and store.
func NewService(router Router, store *cache.Store, log zerolog.Logger) *Service {
	return &Service{router: router, store: store, log: log}
}

// Enabled reports whether requests may be issued for kind.
func (s *Service) Enabled(kind model.SourceKind) bool {
	return s.router.Enabled(kind)
}

// List fetches one page for q, consulting the cache for cache-eligible
// queries and writing it back on a successful miss. Non-default sorts
// are always a live fetch because cache entries carry no sort identity.
func (s *Service) List(ctx context.Context, q model.ListingQuery) (model.ListingResponse, error) {
	eligible := s.cacheable(q)
	key := sources.CacheKey(q)

	if eligible {
		if resp, ok := s.store.Get(key); ok {
			s.log.Debug().Str("key", key).Msg("listing cache hit")
			return resp, nil
		}
	}

	resp, err := s.router.List(ctx, q)
	if err != nil {
		return model.ListingResponse{}, err
	}

	if eligible {
		s.store.Put(key, resp)
	}
	return resp, nil
}

// cacheable restricts caching to default-sort queries on paginated
// sources. Flat-file browsing is keyed by path, which the composite key
// does not carry, so it is never cached.
func (s *Service) cacheable(q model.ListingQuery) bool {
	if q.Source.Kind == model.SourceFlatFiles {
		return false
	}
	return q.CacheEligible()
}
