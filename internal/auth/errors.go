package auth

import "errors"

// Authentication and authorization errors. Callers map every
// authentication failure to the same public response so that clients
// cannot tell which step failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnknownSubject     = errors.New("unknown token subject")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrServiceUnavailable = errors.New("credential store unavailable")
)

// IsAuthenticationFailure reports whether err means the caller could not
// be authenticated (as opposed to being authenticated but not allowed, or
// the store being down).
func IsAuthenticationFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrUnauthenticated)
}
