package usecase

import "fmt"

// ValidationError reports a malformed request. It is returned before any
// upstream call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolutionError means a channel input matched no upstream channel, or the
// channel has no retrievable upload list.
type ResolutionError struct {
	Input string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve channel %q: %v", e.Input, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// UpstreamError wraps a transport or provider failure while processing Input.
type UpstreamError struct {
	Input string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure for %q: %v", e.Input, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
