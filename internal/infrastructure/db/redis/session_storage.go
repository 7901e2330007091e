package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/order-portal/internal/core/domain"
)

const defaultPrefix = "portal:"

// SessionStorage persists session records in Redis without expiry; the
// session lives until logout overwrites it.
// Key format: <prefix><key>
type SessionStorage struct {
	client redis.Cmdable
	prefix string
}

// NewSessionStorage wraps client. An empty prefix selects "portal:".
func NewSessionStorage(client redis.Cmdable, prefix string) *SessionStorage {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStorage{client: client, prefix: prefix}
}

func (s *SessionStorage) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *SessionStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
