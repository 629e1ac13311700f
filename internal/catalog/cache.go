package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ItemSource is the backing lookup the cache reads through to.
type ItemSource interface {
	Items(ctx context.Context, variantIDs []int64) ([]Item, error)
}

const keyPrefix = "catalog:item:"

// Cache is a Redis read-through cache over an ItemSource. Concurrent misses
// for the same id set collapse into one backing call.
type Cache struct {
	client *redis.Client
	source ItemSource
	ttl    time.Duration
	group  singleflight.Group
}

// NewCache constructs the cache. A zero ttl defaults to one hour.
func NewCache(client *redis.Client, source ItemSource, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{client: client, source: source, ttl: ttl}
}

// Items returns catalog data for the given variant ids, serving hits from
// Redis and fetching the rest through the source in one round trip.
func (c *Cache) Items(ctx context.Context, variantIDs []int64) ([]Item, error) {
	if len(variantIDs) == 0 {
		return []Item{}, nil
	}

	keys := make([]string, len(variantIDs))
	for i, id := range variantIDs {
		keys[i] = keyPrefix + strconv.FormatInt(id, 10)
	}

	items := make([]Item, 0, len(variantIDs))
	var misses []int64
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		// Redis being down degrades to direct lookups, not failures.
		misses = variantIDs
	} else {
		for i, v := range vals {
			raw, ok := v.(string)
			if !ok {
				misses = append(misses, variantIDs[i])
				continue
			}
			var it Item
			if err := json.Unmarshal([]byte(raw), &it); err != nil {
				misses = append(misses, variantIDs[i])
				continue
			}
			items = append(items, it)
		}
	}
	if len(misses) == 0 {
		return items, nil
	}

	fetched, err := c.fetch(ctx, misses)
	if err != nil {
		return nil, err
	}
	return append(items, fetched...), nil
}

// fetch loads misses from the source under a singleflight key so a burst of
// identical lookups hits the database once.
func (c *Cache) fetch(ctx context.Context, variantIDs []int64) ([]Item, error) {
	key := flightKey(variantIDs)
	ch := c.group.DoChan(key, func() (any, error) {
		items, err := c.source.Items(ctx, variantIDs)
		if err != nil {
			return nil, err
		}
		c.store(ctx, items)
		return items, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Item), nil
	}
}

func (c *Cache) store(ctx context.Context, items []Item) {
	pipe := c.client.Pipeline()
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			continue
		}
		pipe.Set(ctx, keyPrefix+strconv.FormatInt(it.VariantID, 10), raw, c.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

// Warm refreshes cache entries for the given variant ids, used by the
// nightly warmup job.
func (c *Cache) Warm(ctx context.Context, variantIDs []int64) (int, error) {
	if len(variantIDs) == 0 {
		return 0, nil
	}
	items, err := c.source.Items(ctx, variantIDs)
	if err != nil {
		return 0, fmt.Errorf("catalog warmup: %w", err)
	}
	c.store(ctx, items)
	return len(items), nil
}

func flightKey(variantIDs []int64) string {
	parts := make([]string, len(variantIDs))
	for i, id := range variantIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
