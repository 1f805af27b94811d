package client

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError indicates that authentication has failed or expired.
// It is returned when the backend responds with 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// APIError is a non-2xx backend response other than 401.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf(
		"backend error (%d) on %s %s: %s",
		e.StatusCode, e.Method, e.Path, e.Message,
	)
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
