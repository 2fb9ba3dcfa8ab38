package tests

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"veeloway/internal/domain"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository/memory"
)

// ──────────────────────────────────────────────
// STORE FIXTURES
// ──────────────────────────────────────────────

// newTestStore returns an empty in-memory store with mirroring disabled.
func newTestStore() *memory.Store {
	return memory.NewStore(nil)
}

// seedCustomer inserts an active customer and returns it.
func seedCustomer(store *memory.Store) *domain.Customer {
	customer := &domain.Customer{
		ID:           uuid.New().String(),
		Name:         "Ana Souza",
		Email:        "ana@example.com",
		Status:       domain.CustomerStatusActive,
		RegisteredAt: time.Now(),
	}
	store.Seed([]*domain.Customer{customer}, nil, nil, nil)
	return customer
}

// seedScooter inserts an available scooter at the given per-minute rate.
func seedScooter(store *memory.Store, rate float64) *domain.Scooter {
	scooter := &domain.Scooter{
		ID:            uuid.New().String(),
		Brand:         "Volt",
		Model:         "VX-2",
		SerialNumber:  uuid.New().String(),
		Status:        domain.ScooterStatusAvailable,
		Battery:       90,
		RatePerMinute: rate,
		RegisteredAt:  time.Now(),
	}
	store.Seed(nil, []*domain.Scooter{scooter}, nil, nil)
	return scooter
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory stand-in for the distributed scooter lock.
type MockLockStore struct {
	mu   sync.Mutex
	held map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Denied forces every acquire to report the lock as already held.
	Denied bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireScooterLock(ctx context.Context, scooterID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.Denied {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[scooterID] {
		return false, nil
	}
	m.held[scooterID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseScooterLock(ctx context.Context, scooterID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, scooterID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is an in-memory stand-in for the position index. It
// ignores the radius and returns everything it holds; proximity math is
// Redis's job, not the service's.
type MockLocationStore struct {
	mu        sync.Mutex
	positions map[string][2]float64
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{positions: make(map[string][2]float64)}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, scooterID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[scooterID] = [2]float64{lat, lng}
	return nil
}

func (m *MockLocationStore) FindNearbyScooters(ctx context.Context, lat, lng, radiusKm float64) ([]internalRedis.ScooterLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]internalRedis.ScooterLocation, 0, len(m.positions))
	for id, pos := range m.positions {
		out = append(out, internalRedis.ScooterLocation{ScooterID: id, Lat: pos[0], Lng: pos[1]})
	}
	return out, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, scooterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, scooterID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory stand-in for the dashboard cache.
type MockCacheStore struct {
	mu      sync.Mutex
	payload []byte

	// Counters for verification
	InvalidateCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{}
}

func (m *MockCacheStore) GetDashboard(ctx context.Context, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.payload, out)
}

func (m *MockCacheStore) SetDashboard(ctx context.Context, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = data
	return nil
}

func (m *MockCacheStore) InvalidateDashboard(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = nil
	return nil
}

// Ensure mocks implement the interfaces they stand in for.
var (
	_ internalRedis.LockStoreInterface     = (*MockLockStore)(nil)
	_ internalRedis.LocationStoreInterface = (*MockLocationStore)(nil)
	_ internalRedis.CacheStoreInterface    = (*MockCacheStore)(nil)
)
