package explorer

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of in-flight remote calls system-wide. Every
// block, receipt, balance, and code fetch acquires a slot before issuing the
// call and releases it on completion, regardless of outcome. The limiter is
// shared by all concurrent scans, so two callers polling at once compete for
// the same budget without one caller's cancellation affecting the other's
// in-flight work.
type Limiter struct {
	sem *semaphore.Weighted
}

// NewLimiter creates a limiter allowing at most size concurrent remote calls.
// A size below 1 is treated as 1.
func NewLimiter(size int64) *Limiter {
	if size < 1 {
		size = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(size)}
}

// Acquire blocks until a slot is available or ctx is done. It returns the
// context error if the caller was canceled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release returns a previously acquired slot.
func (l *Limiter) Release() {
	l.sem.Release(1)
}
