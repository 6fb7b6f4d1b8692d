package wait

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntil_ImmediateSuccess(t *testing.T) {
	var calls int32
	err := Until(context.Background(), Policy{Interval: time.Hour}, func(context.Context) (bool, error) {
		atomic.AddInt32(&calls, 1)
		return true, nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, calls, "a satisfied condition is not polled again")
}

func TestUntil_PollsUntilTrue(t *testing.T) {
	var calls int32
	err := Until(context.Background(), Policy{Interval: time.Millisecond, Timeout: time.Second}, func(context.Context) (bool, error) {
		return atomic.AddInt32(&calls, 1) >= 3, nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls)
}

func TestUntil_PolicyTimeout(t *testing.T) {
	err := Until(context.Background(), Policy{Interval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond}, func(context.Context) (bool, error) {
		return false, nil
	})

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, timeout.Waited, 30*time.Millisecond)
	assert.Greater(t, timeout.Attempts, 1)
}

func TestUntil_ContextBudget(t *testing.T) {
	// GIVEN a test-wide budget shorter than the policy timeout
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// WHEN the condition never holds
	start := time.Now()
	err := Until(ctx, Policy{Interval: 5 * time.Millisecond, Timeout: time.Minute}, func(context.Context) (bool, error) {
		return false, nil
	})

	// THEN the context deadline ends the wait
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestUntil_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, Policy{Interval: time.Millisecond}, func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestUntil_ConditionErrorStops(t *testing.T) {
	boom := errors.New("page crashed")
	var calls int32

	err := Until(context.Background(), Policy{Interval: time.Millisecond, Timeout: time.Second}, func(context.Context) (bool, error) {
		atomic.AddInt32(&calls, 1)
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
	var timeout *TimeoutError
	assert.False(t, errors.As(err, &timeout))
	assert.EqualValues(t, 1, calls)
}

func TestFor_UsesContextOnly(t *testing.T) {
	var calls int32
	err := For(context.Background(), func(context.Context) (bool, error) {
		return atomic.AddInt32(&calls, 1) == 2, nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestUntil_RetryKeepsPolling(t *testing.T) {
	// GIVEN a condition whose first query fails mid-navigation
	var calls int32
	cond := func(context.Context) (bool, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return false, Retry(errors.New("Execution context was destroyed"))
		}
		return true, nil
	}

	// WHEN
	err := Until(context.Background(), Policy{Interval: time.Millisecond, Timeout: time.Second}, cond)

	// THEN the next poll succeeds
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestUntil_RetryErrorBecomesCause(t *testing.T) {
	boom := errors.New("Execution context was destroyed")

	err := Until(context.Background(), Policy{Interval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond}, func(context.Context) (bool, error) {
		return false, Retry(boom)
	})

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, boom, timeout.Cause)
	assert.Greater(t, timeout.Attempts, 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetry_Nil(t *testing.T) {
	assert.NoError(t, Retry(nil))
}
