// ABOUTME: Error types for the Relevance client
// ABOUTME: Distinguishes transport failures, malformed responses, and poll exhaustion

package relevance

import (
	"errors"
	"fmt"
)

// ErrPollTimeout is returned when the poll budget is exhausted without a
// chain-success update.
var ErrPollTimeout = errors.New("polling budget exhausted without completion")

// UpstreamError represents a transport failure or non-success HTTP status
// from the Relevance platform. Status is zero for transport-level failures.
type UpstreamError struct {
	Op     string // "trigger" or "poll"
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("relevance %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("relevance %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a successful HTTP response whose body is
// missing fields the trigger contract requires.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("relevance protocol violation: %s", e.Reason)
}
