// Package search debounces search input and keeps overlapping remote
// responses from clobbering each other.
package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/application/ports"
	"storefront/application/store"
)

// DefaultQuietPeriod is how long input must be idle before a search fires
const DefaultQuietPeriod = 300 * time.Millisecond

// Searcher turns a stream of keystrokes into at most one trailing remote
// search per quiet period. Each fired request takes a catalog-update token
// from the store before it leaves, so a slow early response that resolves
// after a newer one is discarded instead of overwriting the catalog.
type Searcher struct {
	gateway ports.CatalogGateway
	store   *store.Store
	quiet   time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a searcher. A non-positive quiet period falls back to the
// default.
func New(gateway ports.CatalogGateway, st *store.Store, quiet time.Duration, logger *zap.Logger) *Searcher {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Searcher{
		gateway: gateway,
		store:   st,
		quiet:   quiet,
		logger:  logger,
	}
}

// Input records a search keystroke. Any pending debounced search is
// cancelled and the quiet-period timer restarts; only the trailing input
// reaches the network.
//
// The catalog-update token is taken here, not when the timer fires: a
// callback that already started when a newer keystroke arrives then carries
// the older token no matter how late it runs, so its results can never
// displace the newer query's.
func (s *Searcher) Input(ctx context.Context, query string) {
	s.store.SetSearchQuery(query)
	token := s.store.BeginCatalogUpdate()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		s.run(ctx, query, token)
	})
}

// Stop cancels any pending debounced search
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// run issues the remote search. An empty query reloads the full catalog
// instead of hitting the search endpoint.
func (s *Searcher) run(ctx context.Context, query string, token uint64) {
	if query == "" {
		lessons, err := s.gateway.ListLessons(ctx)
		if err != nil {
			// Keep the current catalog; the user can keep typing or retry
			s.logger.Error("catalog reload failed", zap.Error(err))
			return
		}
		s.store.ReplaceCatalog(lessons, token)
		return
	}

	lessons := s.gateway.SearchLessons(ctx, query)
	if !s.store.ReplaceCatalog(lessons, token) {
		s.logger.Debug("search result superseded", zap.String("query", query))
	}
}
