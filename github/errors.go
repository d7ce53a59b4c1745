package github

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client failure
type ErrorKind int

const (
	// KindInvalidURL indicates the endpoint could not be parsed as a URL
	KindInvalidURL ErrorKind = iota + 1
	// KindInvalidResponse indicates an unrecognized status code
	KindInvalidResponse
	// KindInvalidData indicates the body did not decode into the expected shape
	KindInvalidData
	// KindNotFound indicates a 404 response
	KindNotFound
	// KindForbidden indicates a 403 response
	KindForbidden
	// KindRateLimitExceeded indicates a 429 response
	KindRateLimitExceeded
	// KindNetwork indicates a transport level failure
	KindNetwork
)

// String returns the name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidResponse:
		return "invalid_response"
	case KindInvalidData:
		return "invalid_data"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindRateLimitExceeded:
		return "rate_limit_exceeded"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// message returns the user-facing text for the kind
func (k ErrorKind) message() string {
	switch k {
	case KindInvalidURL:
		return "Invalid URL"
	case KindInvalidResponse:
		return "Invalid server response"
	case KindInvalidData:
		return "Invalid data"
	case KindNotFound:
		return "User or resource not found"
	case KindForbidden:
		return "Access forbidden"
	case KindRateLimitExceeded:
		return "GitHub API rate limit exceeded. Try again later"
	default:
		return "Network error"
	}
}

// Sentinels for errors.Is. They match any *APIError of the same kind.
var (
	ErrInvalidURL        = &APIError{Kind: KindInvalidURL}
	ErrInvalidResponse   = &APIError{Kind: KindInvalidResponse}
	ErrInvalidData       = &APIError{Kind: KindInvalidData}
	ErrNotFound          = &APIError{Kind: KindNotFound}
	ErrForbidden         = &APIError{Kind: KindForbidden}
	ErrRateLimitExceeded = &APIError{Kind: KindRateLimitExceeded}
	ErrNetwork           = &APIError{Kind: KindNetwork}
)

// APIError is the single error type returned by Client operations
type APIError struct {
	Kind ErrorKind
	// StatusCode is set when the failure came from a received response
	StatusCode int
	// Endpoint is the request URL, or the unparsable endpoint string
	Endpoint string
	// Err is the underlying cause, if any
	Err error
}

// Error returns the user-facing message. Network errors report the
// underlying failure's own description.
func (e *APIError) Error() string {
	if e.Kind == KindNetwork && e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.message()
}

// Unwrap returns the underlying cause
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *APIError of the same kind
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Detail returns a diagnostic description including status and endpoint
func (e *APIError) Detail() string {
	detail := fmt.Sprintf("github API error: %s", e.Kind)
	if e.StatusCode != 0 {
		detail += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Endpoint != "" {
		detail += fmt.Sprintf(": %s", e.Endpoint)
	}
	if e.Err != nil {
		detail += fmt.Sprintf(": %v", e.Err)
	}
	return detail
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsForbidden checks if the error indicates a forbidden response
func (e *APIError) IsForbidden() bool {
	return e.Kind == KindForbidden
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *APIError) IsRateLimited() bool {
	return e.Kind == KindRateLimitExceeded
}

// KindOf returns the kind of err, or 0 if err is not an *APIError
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// classifyStatus maps a non-2xx status code to its error kind
func classifyStatus(code int) ErrorKind {
	switch code {
	case 404:
		return KindNotFound
	case 403:
		return KindForbidden
	case 429:
		return KindRateLimitExceeded
	default:
		return KindInvalidResponse
	}
}
