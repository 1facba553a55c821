package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/config"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches item search results. Entries expire by TTL; the search
// view tolerates staleness of that order, item-by-id reads never go through
// the cache because booking validation must see the live availability flag.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

// NewRedisCache connects a cache to the configured Redis instance.
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		searchTTL: time.Duration(cfg.SearchTTLSecs) * time.Second,
	}
}

// GetSearch returns the cached result for a search query, or (nil, false) on a miss.
func (c *RedisCache) GetSearch(ctx context.Context, text string) ([]*itemDomain.Item, bool, error) {
	data, err := c.client.Get(ctx, searchKey(text)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	var snapshots []itemDomain.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached search: %w", err)
	}

	items := make([]*itemDomain.Item, len(snapshots))
	for i, s := range snapshots {
		items[i] = itemDomain.FromSnapshot(s)
	}
	return items, true, nil
}

// SetSearch stores a search result under the query's key.
func (c *RedisCache) SetSearch(ctx context.Context, text string, items []*itemDomain.Item) error {
	snapshots := make([]itemDomain.Snapshot, len(items))
	for i, it := range items {
		snapshots[i] = it.Snapshot()
	}

	payload, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to encode search result: %w", err)
	}
	return c.client.Set(ctx, searchKey(text), payload, c.searchTTL).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func searchKey(text string) string {
	return "cache:item-search:" + strings.ToLower(strings.TrimSpace(text))
}
