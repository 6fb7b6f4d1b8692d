// Package report turns runner events into console output and result files.
package report

import (
	"time"

	"github.com/swaglabs/shopcheck/internal/browser"
)

// Status is the outcome of one test
type Status string

// Test statuses
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ErrorKind classifies why a test failed
type ErrorKind string

// Error kinds
const (
	KindNotReady   ErrorKind = "not-ready"
	KindAssertion  ErrorKind = "assertion"
	KindNavigation ErrorKind = "navigation"
	KindTimeout    ErrorKind = "timeout"
	KindError      ErrorKind = "error"
)

// StepResult is one named step of a test
type StepResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// TestResult is the record of one executed scenario
type TestResult struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	File      string              `json:"file"`
	Tags      []string            `json:"tags,omitempty"`
	Status    Status              `json:"status"`
	Kind      ErrorKind           `json:"error_kind,omitempty"`
	Error     string              `json:"error,omitempty"`
	Start     time.Time           `json:"start"`
	Duration  time.Duration       `json:"duration"`
	Steps     []StepResult        `json:"steps"`
	Artifacts []browser.Artifacts `json:"artifacts,omitempty"`
}

// FullName is the ID followed by the name
func (r TestResult) FullName() string {
	return r.ID + " " + r.Name
}

// Failed reports whether the test ran and failed
func (r TestResult) Failed() bool {
	return r.Status == StatusFailed
}

// Skipped reports whether the run was cancelled before the test started
func (r TestResult) Skipped() bool {
	return r.Status == StatusSkipped
}

// RunResult is the record of a whole suite run
type RunResult struct {
	RunID    string        `json:"run_id"`
	Profile  string        `json:"profile,omitempty"`
	Browser  string        `json:"browser"`
	BaseURL  string        `json:"base_url"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Tests    []TestResult  `json:"tests"`
}

// Counts returns the number of tests per status
func (r RunResult) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch t.Status {
		case StatusPassed:
			passed++
		case StatusSkipped:
			skipped++
		default:
			failed++
		}
	}
	return passed, failed, skipped
}

// Failed reports whether any test did not pass. A run with skipped tests
// is incomplete and counts as failed.
func (r RunResult) Failed() bool {
	passed, _, _ := r.Counts()
	return passed < len(r.Tests)
}
