package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/order-portal/internal/core/domain"
)

// RefreshTokenRepository stores sandbox refresh tokens with their expiry as
// the key TTL, so Redis drops stale tokens on its own.
// Key format: <prefix>refresh:<token>
type RefreshTokenRepository struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRefreshTokenRepository returns a repository keeping tokens under prefix.
func NewRefreshTokenRepository(client redis.Cmdable, prefix string) *RefreshTokenRepository {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RefreshTokenRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *RefreshTokenRepository) key(token string) string {
	return r.prefix + "refresh:" + token
}

func (r *RefreshTokenRepository) Save(ctx context.Context, token, accountID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(token), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis save refresh token: %w", err)
	}
	return nil
}

// Consume reads and deletes the token atomically, so a token can be
// exchanged at most once.
func (r *RefreshTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	id, err := r.client.GetDel(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("redis consume refresh token: %w", err)
	}
	return id, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redis revoke refresh token: %w", err)
	}
	return nil
}
