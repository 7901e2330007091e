package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
	"github.com/99minutos/order-portal/internal/metrics"
)

// SessionKey is the storage key the session record lives under.
const SessionKey = "auth-storage"

const (
	sessionVersion       = 0
	defaultNotifyTimeout = 10 * time.Second
)

// SessionStore owns the single Session of a portal process. Reads never wait
// on storage; mutations are serialized and flushed before they return.
type SessionStore struct {
	storage       ports.Storage
	notifier      ports.LogoutNotifier
	notifyTimeout time.Duration
	log           zerolog.Logger

	writeMu sync.Mutex // serializes mutate+flush

	mu      sync.RWMutex
	session domain.Session

	inflight sync.WaitGroup
}

// SessionOption customizes a SessionStore.
type SessionOption func(*SessionStore)

// WithLogoutNotifier sets who is told about a logout. Without one, logout is
// purely local.
func WithLogoutNotifier(n ports.LogoutNotifier) SessionOption {
	return func(s *SessionStore) { s.notifier = n }
}

// WithNotifyTimeout bounds each logout notification.
func WithNotifyTimeout(d time.Duration) SessionOption {
	return func(s *SessionStore) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// NewSessionStore returns an empty store backed by storage. Call Restore to
// load the persisted session.
func NewSessionStore(storage ports.Storage, log zerolog.Logger, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		storage:       storage,
		notifyTimeout: defaultNotifyTimeout,
		log:           log.With().Str("component", "session").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted session. A missing record leaves the store
// empty; an unreadable record, or one whose flag disagrees with its tokens,
// is discarded. Only a storage failure is returned.
func (s *SessionStore) Restore(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	raw, err := s.storage.Get(ctx, SessionKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.swap(domain.Session{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	restored, err := decodeSession(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("persisted session is unreadable, starting signed out")
		restored = domain.Session{}
	} else if !restored.Consistent() {
		s.log.Warn().Msg("persisted session is inconsistent, starting signed out")
		restored = domain.Session{}
	}

	s.swap(restored)
	s.log.Debug().Bool("authenticated", restored.IsAuthenticated).Msg("session restored")
	return nil
}

// Login replaces the whole session with data and marks it authenticated.
// The in-memory session only changes once the new record is persisted.
// Both tokens must be present, otherwise domain.ErrMissingTokens is returned
// and nothing changes.
func (s *SessionStore) Login(ctx context.Context, data domain.LoginData) error {
	if data.AccessToken == "" || data.RefreshToken == "" {
		return domain.ErrMissingTokens
	}
	next := domain.NewSession(data)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.flush(ctx, next); err != nil {
		return err
	}
	s.swap(next)

	metrics.SessionTransitionsTotal.WithLabelValues("login").Inc()
	s.log.Info().Str("user_id", data.UserID).Str("role", data.Role).Msg("signed in")
	return nil
}

// Logout clears the session, locally first. When a refresh token existed the
// backend is told in the background; that outcome never reaches the caller.
// The returned error only reports a failed flush, memory is cleared anyway.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	refresh := s.RefreshToken()
	s.swap(domain.Session{})
	flushErr := s.flush(ctx, domain.Session{})

	metrics.SessionTransitionsTotal.WithLabelValues("logout").Inc()
	s.log.Info().Msg("signed out")

	if refresh != "" && s.notifier != nil {
		s.notify(refresh)
	}
	return flushErr
}

func (s *SessionStore) notify(refresh string) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyLogout(ctx, refresh); err != nil {
			metrics.LogoutNotifyFailuresTotal.Inc()
			s.log.Warn().Err(err).Msg("logout notification failed")
		}
	}()
}

// Wait blocks until every pending logout notification has finished.
func (s *SessionStore) Wait() {
	s.inflight.Wait()
}

// UpdateToken swaps the token pair of an authenticated session. Identity,
// permissions and the authenticated flag stay as they are.
func (s *SessionStore) UpdateToken(ctx context.Context, access, refresh string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Session()
	if !next.IsAuthenticated {
		return domain.ErrNotAuthenticated
	}
	next.AccessToken = access
	next.RefreshToken = refresh

	if err := s.flush(ctx, next); err != nil {
		return err
	}
	s.swap(next)

	metrics.SessionTransitionsTotal.WithLabelValues("token_update").Inc()
	s.log.Debug().Msg("tokens updated")
	return nil
}

// HasPermission reports whether the current user may perform action on
// module. It is false whenever there is no session.
func (s *SessionStore) HasPermission(module string, action domain.Action) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.HasPermission(module, action)
}

// Session returns a copy of the current session.
func (s *SessionStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// AccessToken satisfies ports.TokenSource.
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// RefreshToken returns the current refresh token, or "" without a session.
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.RefreshToken
}

// IsAuthenticated reports whether a login is in effect.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

func (s *SessionStore) swap(next domain.Session) {
	s.mu.Lock()
	s.session = next
	s.mu.Unlock()
}

func (s *SessionStore) flush(ctx context.Context, sess domain.Session) error {
	raw, err := encodeSession(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Set(ctx, SessionKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// persistedSession is the on-disk shape. Empty tokens are written as null.
type persistedSession struct {
	State struct {
		User            *domain.User `json:"user"`
		AccessToken     *string      `json:"accessToken"`
		RefreshToken    *string      `json:"refreshToken"`
		IsAuthenticated bool         `json:"isAuthenticated"`
	} `json:"state"`
	Version int `json:"version"`
}

func encodeSession(sess domain.Session) ([]byte, error) {
	var p persistedSession
	p.Version = sessionVersion
	p.State.User = sess.User
	p.State.AccessToken = nullable(sess.AccessToken)
	p.State.RefreshToken = nullable(sess.RefreshToken)
	p.State.IsAuthenticated = sess.IsAuthenticated
	return json.Marshal(p)
}

func decodeSession(raw []byte) (domain.Session, error) {
	var p persistedSession
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Session{}, err
	}
	if p.Version != sessionVersion {
		return domain.Session{}, fmt.Errorf("unsupported session version %d", p.Version)
	}
	sess := domain.Session{
		User:            p.State.User,
		IsAuthenticated: p.State.IsAuthenticated,
	}
	if p.State.AccessToken != nil {
		sess.AccessToken = *p.State.AccessToken
	}
	if p.State.RefreshToken != nil {
		sess.RefreshToken = *p.State.RefreshToken
	}
	return sess, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
