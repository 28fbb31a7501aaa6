package session

import "errors"

var (
	// ErrUnauthenticated is the normal "no valid session" outcome: absent or
	// malformed token, unknown session id, or expired session. Callers branch
	// on it; it is never a storage fault.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound is returned by stores when a session id has no record.
	ErrNotFound = errors.New("session not found")
	// ErrTokenGeneration is returned when the entropy source fails during
	// token issuance. Fatal for the operation: no weaker fallback exists.
	ErrTokenGeneration = errors.New("failed to generate session token")
	// ErrStorage wraps storage unavailability and timeouts. Read-path callers
	// should degrade to unauthenticated; write-path callers (login, logout)
	// must fail loudly.
	ErrStorage = errors.New("session storage failure")
	// ErrUserLookup wraps user store failures during validation.
	ErrUserLookup = errors.New("user lookup failure")
)
