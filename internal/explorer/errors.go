package explorer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates that a caller-supplied address, hash, or
	// height failed its format check. It is returned before any remote call
	// is issued.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a well-formed identifier has no matching
	// record on the ledger.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable indicates that the ledger node was unreachable
	// or returned an error for a query the operation could not proceed
	// without.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrTimeout indicates that a required remote call exceeded its budget.
	ErrTimeout = errors.New("upstream timeout")
)

// classifyUpstream folds a raw fetch error into the explorer error taxonomy.
// ErrNotFound and ErrInvalidInput pass through unchanged so callers can keep
// matching on them with errors.Is, and so does context.Canceled: a scan the
// caller abandoned is not an upstream failure. Deadline expirations become
// ErrTimeout; everything else becomes ErrUpstreamUnavailable.
func classifyUpstream(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
}

// isRetryable reports whether a failed remote call is worth another attempt.
// NotFound and InvalidInput are definitive answers from the node, not
// transient faults, and retrying them only burns the caller's latency budget.
func isRetryable(err error) bool {
	return !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidInput)
}
