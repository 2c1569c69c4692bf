// Package services: shopping-list cache seam.
//
// The consolidated shopping list is a pure read over the unfulfilled items,
// cheap enough to recompute on every call. Deployments that want to avoid
// the aggregation query under load can plug a cache (e.g. the Redis-backed
// one in internal/cache) into the services below; mutating services then
// invalidate it whenever the unfulfilled set may have changed. The cache is
// strictly optional: a nil ListCache disables it.
package services

import (
	"context"

	"github.com/mvasila/go-grocer-backend/internal/consolidation"
)

// ListCache caches the consolidated shopping list. Implementations must be
// safe for concurrent use and must degrade to a miss on any backend error;
// the database remains the source of truth.
type ListCache interface {
	// Get returns the cached list and true on a hit.
	Get(ctx context.Context) ([]consolidation.Entry, bool)
	// Set stores the list. Best effort; failures are swallowed.
	Set(ctx context.Context, entries []consolidation.Entry)
	// Invalidate drops the cached list. Best effort.
	Invalidate(ctx context.Context)
}

// invalidateList drops the cached shopping list if a cache is configured.
func invalidateList(ctx context.Context, c ListCache) {
	if c != nil {
		c.Invalidate(ctx)
	}
}
