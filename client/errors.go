package client

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches every transport failure, including an open circuit breaker
	ErrIO = errors.New("page fetch failed")

	// ErrDecode matches every body decoding failure
	ErrDecode = errors.New("page decode failed")

	// ErrCircuitOpen is wrapped by IOError when the breaker rejects a fetch
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrBodyTooLarge is wrapped by IOError when a response exceeds the body limit
	ErrBodyTooLarge = errors.New("response body too large")
)

// IOError reports a request that never produced a response
type IOError struct {
	URL string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrIO
func (e *IOError) Is(target error) bool { return target == ErrIO }

// StatusError reports a response outside the 2xx range
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Temporary reports whether the server side failed
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// DecodeError reports a body that is not a JSON array of the expected items
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrDecode
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
