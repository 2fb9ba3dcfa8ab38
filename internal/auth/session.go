package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps opaque session tokens in Redis. The rest of the system
// only ever asks whether a session is present; nothing about the identity
// itself is stored beyond the email the session was opened for.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store with the given lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create opens a session and returns its token.
func (s *SessionStore) Create(ctx context.Context, email string) (string, error) {
	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, email, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Present reports whether the token names a live session.
func (s *SessionStore) Present(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Destroy signs the session out.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
