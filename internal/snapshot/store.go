package snapshot

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Collection keys. Each key holds a JSON array of the corresponding entity.
// There is no schema version field; records written by older variants may
// lack optional fields and must still decode (missing fields stay zero).
const (
	KeyCustomers = "veeloway:customers"
	KeyScooters  = "veeloway:scooters"
	KeyContracts = "veeloway:contracts"
	KeyCashFlow  = "veeloway:cashflow"
)

// Store is the durable key-value mirror of the in-memory collections.
// Reads happen once at startup; writes happen on every state change and are
// best-effort: failures are logged, never surfaced to callers.
type Store struct {
	client *redis.Client
	log    *zap.Logger
}

// New creates a snapshot store backed by Redis.
func New(client *redis.Client, log *zap.Logger) *Store {
	return &Store{client: client, log: log}
}

// Load reads the JSON array stored under key into out. A missing key leaves
// out untouched, so the caller's default value stands.
func (s *Store) Load(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

// Save mirrors value under key. Best-effort: serialization or storage
// failures are logged at Warn and swallowed.
func (s *Store) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("snapshot serialize failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		s.log.Warn("snapshot write failed", zap.String("key", key), zap.Error(err))
	}
}
