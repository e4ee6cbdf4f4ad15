package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Entry is the server-side record for a live session.
type Entry struct {
	EmployeeID uint      `json:"employeeId"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IssuedAt   time.Time `json:"issuedAt"`
}

// Store is the redis-backed session registry, keyed by jti. A session token
// is only honored while its jti is present here; deleting the key is an
// immediate, unconditional logout.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Register records a freshly issued session.
func (s *Store) Register(ctx context.Context, jti string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal session entry: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+jti, payload, s.ttl).Err()
}

// IsLive reports whether the session is still registered.
func (s *Store) IsLive(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke removes the session. Revoking an unknown jti is a no-op.
func (s *Store) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, keyPrefix+jti).Err()
}
