package suggest

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure taxonomy of the remote source.
var (
	// ErrRateLimited: HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrUpstream: HTTP 408, 500, 502, 503 or 504.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrRejected: any other non-2xx status, e.g. auth failures or a malformed request.
	ErrRejected = errors.New("request rejected")
	// ErrResponseInvalid: a 2xx response whose body or text could not be used.
	ErrResponseInvalid = errors.New("response invalid")
	// ErrNoArray: the response text contains no bracketed array.
	ErrNoArray = errors.New("no JSON array in response text")
)

// StatusError carries a non-2xx HTTP status and a snippet of the body.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("similarity service returned %d", e.Status)
	}

	return fmt.Sprintf("similarity service returned %d: %s", e.Status, e.Body)
}

// Unwrap maps the status onto the sentinel taxonomy.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return ErrUpstream
	default:
		return ErrRejected
	}
}

// TransportError wraps a failure to send the request or read the response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "similarity request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstream) {
		return true
	}

	var te *TransportError

	return errors.As(err, &te)
}
