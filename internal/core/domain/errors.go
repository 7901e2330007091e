package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNoRefreshToken     = errors.New("no refresh token")
	ErrMissingTokens      = errors.New("login data is missing a token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrKeyNotFound        = errors.New("key not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
)

// APIError is an application-level failure reported inside an otherwise
// successful response envelope ({"success": false, "message": ...}).
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "request unsuccessful"
	}
	return fmt.Sprintf("request unsuccessful: %s", e.Message)
}
