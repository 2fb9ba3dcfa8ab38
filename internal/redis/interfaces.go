package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for scooter position operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, scooterID string, lat, lng float64) error
	FindNearbyScooters(ctx context.Context, lat, lng, radiusKm float64) ([]ScooterLocation, error)
	RemoveLocation(ctx context.Context, scooterID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireScooterLock(ctx context.Context, scooterID string, ttl time.Duration) (bool, error)
	ReleaseScooterLock(ctx context.Context, scooterID string) error
}

// CacheStoreInterface defines the interface for the dashboard cache.
type CacheStoreInterface interface {
	GetDashboard(ctx context.Context, out any) (bool, error)
	SetDashboard(ctx context.Context, value any) error
	InvalidateDashboard(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
)
