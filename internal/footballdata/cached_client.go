// Package footballdata provides caching for provider responses.
package footballdata

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// CachedClient wraps a Fetcher with a TTL cache over the full
// finished-match history, which is the one call repeated unchanged
// across cron runs in daemon mode. Date-bounded results and fixture
// lists change between runs, so they always go to the provider.
type CachedClient struct {
	inner  Fetcher
	cache  *cache.Cache
	logger *logrus.Logger
}

var _ Fetcher = (*CachedClient)(nil)

// NewCachedClient creates a caching wrapper with the given TTL.
func NewCachedClient(inner Fetcher, ttl time.Duration, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		inner:  inner,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// FinishedMatches returns the cached history when fresh, otherwise
// fetches and caches. Failed fetches are never cached.
func (c *CachedClient) FinishedMatches(ctx context.Context, competition string) ([]Match, error) {
	if cached, found := c.cache.Get(competition); found {
		if matches, ok := cached.([]Match); ok {
			c.logger.WithField("competition", competition).Debug("History cache hit")
			return matches, nil
		}
	}

	matches, err := c.inner.FinishedMatches(ctx, competition)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(competition, matches)
	return matches, nil
}

// FinishedMatchesBetween passes through to the wrapped client.
func (c *CachedClient) FinishedMatchesBetween(ctx context.Context, competition string, from, to time.Time) ([]Match, error) {
	return c.inner.FinishedMatchesBetween(ctx, competition, from, to)
}

// ScheduledMatches passes through to the wrapped client.
func (c *CachedClient) ScheduledMatches(ctx context.Context, competition string) ([]Match, error) {
	return c.inner.ScheduledMatches(ctx, competition)
}
