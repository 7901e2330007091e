package httpclient

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when a successful response carries no body.
	ErrEmptyResponse = errors.New("empty response body")
	// ErrUnsupportedParam is returned for query values that are not scalars.
	ErrUnsupportedParam = errors.New("unsupported query parameter")
)

// StatusError is the normalized error for a completed request whose status
// was not 2xx. Data holds the decoded JSON body, or an empty map when the
// body was not JSON.
type StatusError struct {
	Status     int
	StatusText string
	Data       any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d %s", e.Status, e.StatusText)
}

// Field returns a top-level string field of an object body such as
// {"detail": "not found"}, or "" when absent.
func (e *StatusError) Field(name string) string {
	m, ok := e.Data.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[name].(string)
	return s
}

// TransportError means the request never completed: DNS, refused
// connection, reset, cancelled context.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsStatus returns the *StatusError inside err, if any.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsTransport reports whether err means the request never completed.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
