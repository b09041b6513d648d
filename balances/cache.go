package balances

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const DefaultTTL = time.Minute

// CachedLookup memoizes another Lookup per address for a fixed TTL.
type CachedLookup struct {
	next  Lookup
	cache *cache.Cache
}

var _ Lookup = &CachedLookup{}

func NewCachedLookup(next Lookup, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedLookup{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *CachedLookup) Balances(ctx context.Context, address string) (map[string]string, error) {
	key := strings.ToLower(address)

	if cached, found := c.cache.Get(key); found {
		return copyBalances(cached.(map[string]string)), nil
	}

	result, err := c.next.Balances(ctx, address)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, copyBalances(result))
	return result, nil
}

func (c *CachedLookup) Flush() {
	c.cache.Flush()
}

func copyBalances(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
