// Package pages holds one page object per storefront screen. Page objects
// embed *Base, which owns the wait policy: every action waits for the
// page to settle and the target to be visible and enabled, within the
// deadline carried by the caller's context.
package pages

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/swaglabs/shopcheck/internal/browser"
	"github.com/swaglabs/shopcheck/internal/wait"
)

// Clickable pages can click elements
type Clickable interface {
	ClickWhenReady(ctx context.Context, selector string) error
	ForceClick(ctx context.Context, selector string) error
}

// Fillable pages can type into form fields
type Fillable interface {
	FillWhenReady(ctx context.Context, selector, text string) error
}

// Waitable pages can wait for load and for elements
type Waitable interface {
	WaitForLoad(ctx context.Context) error
	WaitVisible(ctx context.Context, selector string) error
}

// Options configures the primitives shared by every page object
type Options struct {
	BaseURL string
	Poll    time.Duration
	// Inspect enables PauseForInspection. It is only honoured in headed runs.
	Inspect  bool
	Headless bool
}

// Base implements the primitives page objects are built from
type Base struct {
	page    browser.Page
	baseURL string
	policy  wait.Policy
	inspect bool
}

var (
	_ Clickable = (*Base)(nil)
	_ Fillable  = (*Base)(nil)
	_ Waitable  = (*Base)(nil)
)

// NewBase wraps a browser page
func NewBase(page browser.Page, opts Options) *Base {
	return &Base{
		page:    page,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		policy:  wait.Policy{Interval: opts.Poll},
		inspect: opts.Inspect && !opts.Headless,
	}
}

// Page returns the underlying browser page
func (b *Base) Page() browser.Page {
	return b.page
}

// Open navigates to a path under the base URL and waits for the load
func (b *Base) Open(ctx context.Context, path string) error {
	target := b.baseURL + path
	if err := b.page.Goto(ctx, target); err != nil {
		return &NavigationError{Want: target, Err: err}
	}
	return b.WaitForLoad(ctx)
}

// WaitForLoad waits until the current document has been parsed
func (b *Base) WaitForLoad(ctx context.Context) error {
	if err := b.page.WaitForLoad(ctx); err != nil {
		current, _ := b.page.URL(ctx)
		return &NavigationError{Want: "loaded document", Got: current, Err: err}
	}
	return nil
}

// settled treats engine query errors as "not yet". Script-backed queries
// fail while a navigation replaces the document, and the next poll
// usually succeeds.
func settled(cond wait.Condition) wait.Condition {
	return func(ctx context.Context) (bool, error) {
		ok, err := cond(ctx)
		if err != nil && ctx.Err() == nil {
			return false, wait.Retry(err)
		}
		return ok, err
	}
}

func (b *Base) waitFor(ctx context.Context, selector string, cond wait.Condition) error {
	start := time.Now()
	if err := wait.Until(ctx, b.policy, settled(cond)); err != nil {
		return &NotReadyError{Selector: selector, Waited: time.Since(start), Err: err}
	}
	return nil
}

// WaitVisible waits until selector matches a visible element
func (b *Base) WaitVisible(ctx context.Context, selector string) error {
	return b.waitFor(ctx, selector, func(ctx context.Context) (bool, error) {
		return b.page.IsVisible(ctx, selector)
	})
}

// WaitHidden waits until selector matches no visible element
func (b *Base) WaitHidden(ctx context.Context, selector string) error {
	return b.waitFor(ctx, selector, func(ctx context.Context) (bool, error) {
		visible, err := b.page.IsVisible(ctx, selector)
		return !visible, err
	})
}

// WaitActionable waits until selector is visible and enabled
func (b *Base) WaitActionable(ctx context.Context, selector string) error {
	if err := b.WaitForLoad(ctx); err != nil {
		return err
	}
	return b.waitFor(ctx, selector, func(ctx context.Context) (bool, error) {
		visible, err := b.page.IsVisible(ctx, selector)
		if err != nil || !visible {
			return false, err
		}
		return b.page.IsEnabled(ctx, selector)
	})
}

// ClickWhenReady clicks selector once it is actionable
func (b *Base) ClickWhenReady(ctx context.Context, selector string) error {
	if err := b.WaitActionable(ctx, selector); err != nil {
		return err
	}
	if err := b.page.Click(ctx, selector); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// FillWhenReady replaces the value of selector once it is actionable
func (b *Base) FillWhenReady(ctx context.Context, selector, text string) error {
	if err := b.WaitActionable(ctx, selector); err != nil {
		return err
	}
	if err := b.page.Fill(ctx, selector, text); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// SelectWhenReady picks an option of a <select> once it is actionable
func (b *Base) SelectWhenReady(ctx context.Context, selector, value string) error {
	if err := b.WaitActionable(ctx, selector); err != nil {
		return err
	}
	if err := b.page.SelectOption(ctx, selector, value); err != nil {
		return fmt.Errorf("select %q in %s: %w", value, selector, err)
	}
	return nil
}

const jsForceClick = `sel => {
	const el = document.querySelector(sel);
	if (!el) return false;
	el.click();
	return true;
}`

// ForceClick dispatches a click from page script, skipping the visibility
// and enabled checks. The element only has to exist.
func (b *Base) ForceClick(ctx context.Context, selector string) error {
	if err := b.WaitForLoad(ctx); err != nil {
		return err
	}
	err := b.waitFor(ctx, selector, func(ctx context.Context) (bool, error) {
		n, err := b.page.Count(ctx, selector)
		return n > 0, err
	})
	if err != nil {
		return err
	}
	res, err := b.page.Evaluate(ctx, jsForceClick, selector)
	if err != nil {
		return fmt.Errorf("force click %s: %w", selector, err)
	}
	if clicked, _ := res.(bool); !clicked {
		return &NotReadyError{Selector: selector, Err: errors.New("element vanished before the click")}
	}
	return nil
}

// IsVisible reports whether selector currently matches a visible element
func (b *Base) IsVisible(ctx context.Context, selector string) (bool, error) {
	return b.page.IsVisible(ctx, selector)
}

// IsEnabled reports whether selector currently matches an enabled element
func (b *Base) IsEnabled(ctx context.Context, selector string) (bool, error) {
	return b.page.IsEnabled(ctx, selector)
}

// Text waits for selector to be visible and returns its text
func (b *Base) Text(ctx context.Context, selector string) (string, error) {
	if err := b.WaitVisible(ctx, selector); err != nil {
		return "", err
	}
	return b.page.Text(ctx, selector)
}

// Texts returns the text of every element matching selector without waiting
func (b *Base) Texts(ctx context.Context, selector string) ([]string, error) {
	return b.page.Texts(ctx, selector)
}

// Path returns the path of the current URL
func (b *Base) Path(ctx context.Context) (string, error) {
	raw, err := b.page.URL(ctx)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", raw, err)
	}
	return u.Path, nil
}

// ExpectPath waits until the browser is at path, ignoring the query
func (b *Base) ExpectPath(ctx context.Context, path string) error {
	var last string
	err := wait.Until(ctx, b.policy, settled(func(ctx context.Context) (bool, error) {
		got, err := b.Path(ctx)
		if err != nil {
			return false, err
		}
		last = got
		return got == path, nil
	}))
	if err != nil {
		return &NavigationError{Want: path, Got: last, Err: err}
	}
	return nil
}

// ExpectQuery waits until the current URL carries key=value
func (b *Base) ExpectQuery(ctx context.Context, key, value string) error {
	var last string
	err := wait.Until(ctx, b.policy, settled(func(ctx context.Context) (bool, error) {
		raw, err := b.page.URL(ctx)
		if err != nil {
			return false, err
		}
		last = raw
		u, err := url.Parse(raw)
		if err != nil {
			return false, nil
		}
		return u.Query().Get(key) == value, nil
	}))
	if err != nil {
		return &NavigationError{Want: fmt.Sprintf("?%s=%s", key, value), Got: last, Err: err}
	}
	return nil
}

// PauseForInspection hands control to the engine's inspector. It does
// nothing unless inspection is enabled in a headed run.
func (b *Base) PauseForInspection(ctx context.Context) error {
	if !b.inspect {
		return nil
	}
	return b.page.Pause(ctx)
}
