package state

import (
	"errors"

	"github.com/s0up4200/ghscout/github"
)

// FallbackMessage is shown for failures outside the client's error taxonomy
const FallbackMessage = "An unexpected error occurred"

// Status is the coarse state of a container
type Status int

const (
	// StatusIdle means nothing has been fetched yet
	StatusIdle Status = iota
	// StatusLoading means a fetch is in flight
	StatusLoading
	// StatusLoaded means the last fetch succeeded
	StatusLoaded
	// StatusErrored means the last fetch failed; earlier data is retained
	StatusErrored
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusLoading:
		return "LOADING"
	case StatusLoaded:
		return "LOADED"
	case StatusErrored:
		return "ERRORED"
	default:
		return "UNKNOWN"
	}
}

func deriveStatus(isLoading bool, errorMessage string, loaded bool) Status {
	switch {
	case isLoading:
		return StatusLoading
	case errorMessage != "":
		return StatusErrored
	case loaded:
		return StatusLoaded
	default:
		return StatusIdle
	}
}

// ErrorMessage returns the text a container exposes for err. Client errors
// carry their own message; anything else gets FallbackMessage.
func ErrorMessage(err error) string {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return FallbackMessage
}
