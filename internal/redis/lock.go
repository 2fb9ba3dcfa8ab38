package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireScooterLock attempts to acquire a lock for the given scooter.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireScooterLock(ctx context.Context, scooterID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:scooter:%s", scooterID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseScooterLock releases the lock for the given scooter.
func (s *LockStore) ReleaseScooterLock(ctx context.Context, scooterID string) error {
	key := fmt.Sprintf("lock:scooter:%s", scooterID)

	return s.client.Del(ctx, key).Err()
}
