package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles short-lived read caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// DashboardCacheTTL bounds how stale the dashboard figures may get. The
// figures aggregate the whole store on every hit, so a short cache keeps
// a busy console cheap without the numbers drifting noticeably.
const DashboardCacheTTL = 30 * time.Second

const dashboardCacheKey = "cache:dashboard"

// GetDashboard loads the cached dashboard figures into out. Returns false
// on a cache miss.
func (s *CacheStore) GetDashboard(ctx context.Context, out any) (bool, error) {
	data, err := s.client.Get(ctx, dashboardCacheKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetDashboard caches the dashboard figures.
func (s *CacheStore) SetDashboard(ctx context.Context, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dashboardCacheKey, data, DashboardCacheTTL).Err()
}

// InvalidateDashboard drops the cached figures after a write that moves
// them.
func (s *CacheStore) InvalidateDashboard(ctx context.Context) error {
	return s.client.Del(ctx, dashboardCacheKey).Err()
}
