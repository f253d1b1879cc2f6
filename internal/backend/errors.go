package backend

import "errors"

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded its deadline or was cancelled.
	ErrTimeout = errors.New("backend request timed out")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response.
	ErrUnexpectedStatus = errors.New("backend returned unexpected status")

	// ErrDecode indicates the response body was not the expected JSON.
	ErrDecode = errors.New("decoding backend response")

	// ErrRejected indicates a 2xx response whose body reports a failure.
	ErrRejected = errors.New("backend rejected the request")
)
