package pages

import (
	"fmt"
	"time"
)

// NotReadyError means an element never became actionable before the
// test's deadline.
type NotReadyError struct {
	Selector string
	Waited   time.Duration
	Err      error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("element %s not ready after %s: %v", e.Selector, e.Waited.Round(time.Millisecond), e.Err)
}

func (e *NotReadyError) Unwrap() error {
	return e.Err
}

// NavigationError means the page did not reach the expected URL or state
type NavigationError struct {
	Want string
	Got  string
	Err  error
}

func (e *NavigationError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("navigation to %s failed: %v", e.Want, e.Err)
	}
	return fmt.Sprintf("expected page %s but browser is at %s: %v", e.Want, e.Got, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// AssertionError is an observed value that differs from the expected one
type AssertionError struct {
	What string
	Want any
	Got  any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: want %v, got %v", e.What, e.Want, e.Got)
}
