// Package browser adapts browser automation engines to the small surface
// the page objects need. Every blocking call takes a context; its deadline
// is the time the engine may spend on that call.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by engines that lack a capability, such as
// tracing on the DevTools protocol engine.
var ErrUnsupported = errors.New("not supported by this engine")

// Page is one tab inside an isolated session
type Page interface {
	Goto(ctx context.Context, url string) error
	URL(ctx context.Context) (string, error)
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	SelectOption(ctx context.Context, selector, value string) error

	// IsVisible and IsEnabled answer immediately; a selector that matches
	// nothing is neither visible nor enabled.
	IsVisible(ctx context.Context, selector string) (bool, error)
	IsEnabled(ctx context.Context, selector string) (bool, error)
	Count(ctx context.Context, selector string) (int, error)

	// Text returns the trimmed text of the first match, Texts of every match.
	Text(ctx context.Context, selector string) (string, error)
	Texts(ctx context.Context, selector string) ([]string, error)

	// Evaluate runs a JavaScript function expression with one argument.
	Evaluate(ctx context.Context, script string, arg any) (any, error)
	WaitForLoad(ctx context.Context) error
	Pause(ctx context.Context) error
	Screenshot(ctx context.Context, path string) error
}

// Artifacts lists the diagnostic files kept for a session
type Artifacts struct {
	Dir        string `json:"dir,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	Trace      string `json:"trace,omitempty"`
	Video      string `json:"video,omitempty"`
}

// Paths returns the non-empty artifact files
func (a Artifacts) Paths() []string {
	var out []string
	for _, p := range []string{a.Screenshot, a.Trace, a.Video} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Empty reports whether no artifact was kept
func (a Artifacts) Empty() bool {
	return len(a.Paths()) == 0
}

// CloseOptions controls what happens to recordings when a session closes
type CloseOptions struct {
	// Keep saves the trace and video into Dir; otherwise they are discarded.
	Keep bool
	Dir  string
}

// Session is an isolated browser context with its own cookies and storage
type Session interface {
	Page() Page
	Close(ctx context.Context, opts CloseOptions) (Artifacts, error)
}

// Viewport is a window size in CSS pixels
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures a new session
type SessionOptions struct {
	Viewport Viewport
	// Record enables tracing and video where the engine supports them.
	Record bool
	// DefaultTimeout bounds engine calls made without a context deadline.
	DefaultTimeout time.Duration
}

// Engine launches browsers and opens sessions. Engines are safe for
// concurrent use; each session belongs to one test.
type Engine interface {
	Name() string
	NewSession(ctx context.Context, opts SessionOptions) (Session, error)
	Close() error
}

// LaunchOptions selects and configures an engine
type LaunchOptions struct {
	Browser  string
	Headless bool
	SlowMo   time.Duration
}

// Launch starts the engine named by opts.Browser: chromium, firefox and
// webkit run on Playwright, cdp drives Chrome directly.
func Launch(opts LaunchOptions) (Engine, error) {
	switch opts.Browser {
	case "chromium", "firefox", "webkit":
		return NewPlaywright(opts)
	case "cdp":
		return NewCDP(opts), nil
	default:
		return nil, fmt.Errorf("unknown browser %q", opts.Browser)
	}
}

// remaining converts a context deadline into an engine timeout in
// milliseconds, falling back to def when the context has none.
func remaining(ctx context.Context, def time.Duration) float64 {
	if dl, ok := ctx.Deadline(); ok {
		d := time.Until(dl)
		if d < time.Millisecond {
			d = time.Millisecond
		}
		return float64(d.Milliseconds())
	}
	return float64(def.Milliseconds())
}
