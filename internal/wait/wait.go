// Package wait polls a condition until it holds or its deadline passes.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultInterval is the poll interval used when a Policy leaves it unset
const DefaultInterval = 100 * time.Millisecond

// Policy bounds a wait. A zero Timeout means the wait ends only when the
// context does, which is how the per-test budget is enforced.
type Policy struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Condition reports whether the awaited state holds. A non-nil error stops
// the wait immediately unless it was wrapped with Retry.
type Condition func(ctx context.Context) (bool, error)

// TimeoutError is returned when the condition never held. Cause is the
// last error passed to Retry, or the context error when there was none.
type TimeoutError struct {
	Waited   time.Duration
	Attempts int
	Cause    error

	deadline error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("condition not met after %s (%d attempts): %v", e.Waited.Round(time.Millisecond), e.Attempts, e.Cause)
}

func (e *TimeoutError) Unwrap() []error {
	if e.deadline == nil || e.deadline == e.Cause {
		return []error{e.Cause}
	}
	return []error{e.Cause, e.deadline}
}

var errNotYet = errors.New("condition not met")

type retryError struct {
	err error
}

func (e *retryError) Error() string { return e.err.Error() }

func (e *retryError) Unwrap() error { return e.err }

// Retry marks a condition error as transient: Until keeps polling and only
// reports it if the deadline passes first.
func Retry(err error) error {
	if err == nil {
		return nil
	}
	return &retryError{err: err}
}

// Until evaluates cond immediately and then every p.Interval until it
// returns true, returns an error, or the deadline passes.
func Until(ctx context.Context, p Policy, cond Condition) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	attempts := 0
	var last error
	operation := func() error {
		attempts++
		ok, err := cond(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			var retry *retryError
			if errors.As(err, &retry) {
				last = retry.err
				return err
			}
			return backoff.Permanent(err)
		}
		if !ok {
			return errNotYet
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(interval), ctx))
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause := last
		if cause == nil {
			cause = ctxErr
		}
		return &TimeoutError{Waited: time.Since(start), Attempts: attempts, Cause: cause, deadline: ctxErr}
	}
	return err
}

// For blocks until cond holds, checking at the default interval with no
// timeout of its own.
func For(ctx context.Context, cond Condition) error {
	return Until(ctx, Policy{}, cond)
}
