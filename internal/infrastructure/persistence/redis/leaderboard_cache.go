package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
)

// keyLeaderboardTop namespaces the cached top-N results; the limit is part of
// the key so different page sizes never alias each other.
const keyLeaderboardTop = "leaderboard:top:"

// CachedLeaderboard is a read-through decorator over a leaderboard.Repository.
// Hits skip the aggregation query entirely; misses fall through to the source
// and fill the cache. Cache errors are swallowed in favor of the source so
// Redis going away never breaks a read.
type CachedLeaderboard struct {
	source leaderboard.Repository
	cache  *Cache
}

// NewCachedLeaderboard wraps source with Redis caching.
func NewCachedLeaderboard(source leaderboard.Repository, cache *Cache) *CachedLeaderboard {
	return &CachedLeaderboard{source: source, cache: cache}
}

// TopReceivers implements leaderboard.Repository.
func (c *CachedLeaderboard) TopReceivers(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if err := leaderboard.ValidateLimit(limit); err != nil {
		return nil, err
	}

	key := topKey(limit)

	var cached []leaderboard.Entry
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrCacheSerialization) {
		// Connection trouble; serve from the source without filling.
		entries, srcErr := c.source.TopReceivers(ctx, limit)
		return entries, srcErr
	}

	entries, err := c.source.TopReceivers(ctx, limit)
	if err != nil {
		return nil, err
	}

	// Best effort fill; a failed write only costs the next read a query.
	_ = c.cache.Set(ctx, key, entries, TTLLeaderboardCache)

	return entries, nil
}

// Invalidate drops every cached top-N variant. Called after any commit that
// changes received credits or endorsement counts.
func (c *CachedLeaderboard) Invalidate(ctx context.Context) error {
	return c.cache.DeleteByPattern(ctx, keyLeaderboardTop+"*")
}

func topKey(limit int) string {
	return fmt.Sprintf("%s%d", keyLeaderboardTop, limit)
}
