package service

import (
	"context"
	"fmt"
)

// LogoutNotifier revokes a refresh token on the backend. It is meant to sit
// on an anonymous client: the session is already gone when it runs.
type LogoutNotifier struct {
	api API
}

// NewLogoutNotifier returns a notifier that posts through api.
func NewLogoutNotifier(api API) *LogoutNotifier {
	return &LogoutNotifier{api: api}
}

func (n *LogoutNotifier) NotifyLogout(ctx context.Context, refreshToken string) error {
	if err := n.api.Post(ctx, pathLogout, refreshTokenBody{RefreshToken: refreshToken}, nil, nil); err != nil {
		return fmt.Errorf("notify logout: %w", err)
	}
	return nil
}
