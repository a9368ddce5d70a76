// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package baxus

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BAXUSNFT/bob/internal/cache"
	"github.com/BAXUSNFT/bob/internal/models"
)

// DefaultCacheTTL bounds how stale a cached collection may get. Collections
// change slowly, so a short TTL mostly absorbs bursts of chat turns for the
// same user.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheSize is the maximum number of user collections kept in memory.
const DefaultCacheSize = 1024

// collectionFetcher is the upstream a CachedClient wraps.
type collectionFetcher interface {
	UserBottles(ctx context.Context, username string) ([]models.OwnedBottle, error)
}

// CachedClient wraps a collection fetcher with an LRU cache keyed by
// username. Fetch errors are not cached, so transient upstream failures
// retry on the next call.
type CachedClient struct {
	inner  collectionFetcher
	cache  *cache.LRU[[]models.OwnedBottle]
	logger zerolog.Logger
}

// NewCachedClient wraps inner with an LRU cache. Zero or negative size and
// ttl fall back to the defaults.
func NewCachedClient(inner collectionFetcher, size int, ttl time.Duration, logger zerolog.Logger) *CachedClient {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedClient{
		inner:  inner,
		cache:  cache.NewLRU[[]models.OwnedBottle](size, ttl),
		logger: logger.With().Str("component", "baxus-cache").Logger(),
	}
}

// UserBottles returns the cached collection for username, fetching from the
// upstream on a miss. Empty collections are cached too: a user with no bar
// generates the same repeated lookups as one with a full bar.
func (c *CachedClient) UserBottles(ctx context.Context, username string) ([]models.OwnedBottle, error) {
	key := strings.ToLower(strings.TrimSpace(username))
	if key == "" {
		return c.inner.UserBottles(ctx, username)
	}

	if owned, ok := c.cache.Get(key); ok {
		c.logger.Debug().Str("username", username).Int("bottles", len(owned)).Msg("collection cache hit")
		return owned, nil
	}

	owned, err := c.inner.UserBottles(ctx, username)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, owned)
	return owned, nil
}

// Invalidate drops the cached collection for username.
func (c *CachedClient) Invalidate(username string) {
	c.cache.Remove(strings.ToLower(strings.TrimSpace(username)))
}
