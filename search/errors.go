package search

import "errors"

// ErrNilSpace indicates that a search was configured without a Space.
var ErrNilSpace = errors.New("search space is nil")

// ErrInvalidOption indicates that an Option received an out-of-range value.
var ErrInvalidOption = errors.New("invalid search option")

// ErrUnknownStrategy indicates a Strategy value or name the engine does not know.
var ErrUnknownStrategy = errors.New("unknown search strategy")

// ErrReplayMismatch indicates that replaying a result's path did not reach its end state.
var ErrReplayMismatch = errors.New("replay does not reach end state")

// ErrStore indicates that a finished search could not be recorded.
// The search result itself is still valid.
var ErrStore = errors.New("search report could not be stored")

// SearchError represents an error from Engine configuration or reporting.
//
// Contract violations inside client code (illegal actions, malformed states)
// are not SearchErrors: they panic and abort the search.
type SearchError struct {
	// Message is the human-readable error description.
	Message string

	// Code is a machine-readable error code, e.g. "INVALID_WORKERS".
	Code string

	// Cause is one of the sentinel errors in this package, or a wrapped
	// collaborator error.
	Cause error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *SearchError) Unwrap() error {
	return e.Cause
}
