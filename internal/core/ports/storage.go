package ports

import "context"

// Storage is the durable key-value record the session store persists into.
// Get returns domain.ErrKeyNotFound when the key was never written.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LogoutNotifier tells the backend that a refresh token is no longer used.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context, refreshToken string) error
}

// TokenSource yields the access token to attach to the next request.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}
