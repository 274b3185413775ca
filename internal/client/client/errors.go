package client

import "errors"

var (
	// ErrUnavailable marks transport failures: the catalog could not be reached.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned when the catalog rejects the token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the catalog has no such resource.
	ErrNotFound = errors.New("not found")

	// ErrProtocol covers unexpected statuses and undecodable responses.
	ErrProtocol = errors.New("protocol error")
)

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
