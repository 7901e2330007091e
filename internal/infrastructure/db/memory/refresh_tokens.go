package memory

import (
	"context"
	"sync"
	"time"

	"github.com/99minutos/order-portal/internal/core/domain"
)

type refreshEntry struct {
	accountID string
	expiresAt time.Time
}

// RefreshTokenRepository keeps issued refresh tokens until they are consumed,
// revoked or expire.
type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	now    func() time.Time
}

// NewRefreshTokenRepository returns an empty token repository.
func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]refreshEntry), now: time.Now}
}

func (r *RefreshTokenRepository) Save(_ context.Context, token, accountID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = refreshEntry{accountID: accountID, expiresAt: expiresAt}
	return nil
}

func (r *RefreshTokenRepository) Consume(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[token]
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	delete(r.tokens, token)
	if !r.now().Before(e.expiresAt) {
		return "", domain.ErrInvalidCredentials
	}
	return e.accountID, nil
}

func (r *RefreshTokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}
