// Package memory holds the in-process repositories the sandbox backend serves
// its fixtures from.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/99minutos/order-portal/internal/core/domain"
)

// AccountRepository is a fixed set of accounts keyed by id and email.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string
}

// NewAccountRepository returns a repository holding accounts.
func NewAccountRepository(accounts ...domain.Account) *AccountRepository {
	r := &AccountRepository{
		byID:    make(map[string]domain.Account, len(accounts)),
		byEmail: make(map[string]string, len(accounts)),
	}
	for _, a := range accounts {
		r.Put(a)
	}
	return r
}

// Put inserts or replaces an account.
func (r *AccountRepository) Put(a domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	r.byEmail[strings.ToLower(a.Email)] = a.ID
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &a, nil
}
