package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CDP drives Chrome over the DevTools protocol with chromedp. Every session
// runs in its own browser process, so sessions share no state. Tracing and
// video are not available.
type CDP struct {
	opts LaunchOptions
}

// NewCDP returns an engine that starts Chrome lazily, once per session
func NewCDP(opts LaunchOptions) *CDP {
	return &CDP{opts: opts}
}

// Name returns "cdp"
func (e *CDP) Name() string {
	return "cdp"
}

// NewSession starts a browser process and opens its first tab
func (e *CDP) NewSession(ctx context.Context, opts SessionOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", e.opts.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.WindowSize(opts.Viewport.Width, opts.Viewport.Height),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	page := &cdpPage{tab: tabCtx, timeout: timeout}

	err := page.run(ctx, emulation.SetDeviceMetricsOverride(int64(opts.Viewport.Width), int64(opts.Viewport.Height), 1, false))
	if err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &cdpSession{page: page, cancel: func() { tabCancel(); allocCancel() }}, nil
}

// Close is a no-op; browsers exit with their sessions
func (e *CDP) Close() error {
	return nil
}

type cdpSession struct {
	page   *cdpPage
	cancel context.CancelFunc
}

func (s *cdpSession) Page() Page {
	return s.page
}

func (s *cdpSession) Close(_ context.Context, opts CloseOptions) (Artifacts, error) {
	defer s.cancel()
	err := chromedp.Cancel(s.page.tab)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return Artifacts{Dir: opts.Dir}, err
}

type cdpPage struct {
	tab     context.Context
	timeout time.Duration
}

// run executes actions on the tab, bounded by the caller's deadline and
// cancelled with the caller's context.
func (p *cdpPage) run(ctx context.Context, actions ...chromedp.Action) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(p.timeout)
	}
	runCtx, cancel := context.WithDeadline(p.tab, deadline)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

// eval calls a function expression with arg and decodes its result into out.
// The result travels as a JSON string so undefined and null both decode.
func (p *cdpPage) eval(ctx context.Context, script string, arg any, out any) error {
	encodedArg, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to encode script argument: %w", err)
	}
	expr := fmt.Sprintf("JSON.stringify({v: (%s)(%s)})", script, encodedArg)

	var raw string
	if err := p.run(ctx, chromedp.Evaluate(expr, &raw)); err != nil {
		return err
	}
	var envelope struct {
		V jsoniter.RawMessage `json:"v"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return fmt.Errorf("failed to decode script result: %w", err)
	}
	if len(envelope.V) == 0 || out == nil {
		return nil
	}
	return json.Unmarshal(envelope.V, out)
}

const jsVisible = `sel => {
	const el = document.querySelector(sel);
	if (!el) return false;
	const style = window.getComputedStyle(el);
	if (style.visibility === "hidden" || style.display === "none") return false;
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
}`

const jsEnabled = `sel => {
	const el = document.querySelector(sel);
	return !!el && !el.disabled && el.getAttribute("aria-disabled") !== "true";
}`

const jsSelect = `args => {
	const el = document.querySelector(args.sel);
	if (!el) return false;
	el.value = args.value;
	el.dispatchEvent(new Event("input", {bubbles: true}));
	el.dispatchEvent(new Event("change", {bubbles: true}));
	return el.value === args.value;
}`

const (
	jsCount = `sel => document.querySelectorAll(sel).length`
	jsTexts = `sel => Array.from(document.querySelectorAll(sel), el => el.textContent)`
)

func (p *cdpPage) Goto(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *cdpPage) URL(ctx context.Context) (string, error) {
	var url string
	err := p.run(ctx, chromedp.Location(&url))
	return url, err
}

func (p *cdpPage) Click(ctx context.Context, selector string) error {
	return p.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

func (p *cdpPage) Fill(ctx context.Context, selector, value string) error {
	return p.run(ctx,
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (p *cdpPage) SelectOption(ctx context.Context, selector, value string) error {
	var ok bool
	if err := p.eval(ctx, jsSelect, map[string]string{"sel": selector, "value": value}, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("could not select %q in %s", value, selector)
	}
	return nil
}

func (p *cdpPage) IsVisible(ctx context.Context, selector string) (bool, error) {
	var ok bool
	err := p.eval(ctx, jsVisible, selector, &ok)
	return ok, err
}

func (p *cdpPage) IsEnabled(ctx context.Context, selector string) (bool, error) {
	var ok bool
	err := p.eval(ctx, jsEnabled, selector, &ok)
	return ok, err
}

func (p *cdpPage) Count(ctx context.Context, selector string) (int, error) {
	var n int
	err := p.eval(ctx, jsCount, selector, &n)
	return n, err
}

func (p *cdpPage) Text(ctx context.Context, selector string) (string, error) {
	var s string
	err := p.run(ctx, chromedp.Text(selector, &s, chromedp.ByQuery))
	return strings.TrimSpace(s), err
}

func (p *cdpPage) Texts(ctx context.Context, selector string) ([]string, error) {
	var texts []string
	if err := p.eval(ctx, jsTexts, selector, &texts); err != nil {
		return nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

func (p *cdpPage) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	var out any
	err := p.eval(ctx, script, arg, &out)
	return out, err
}

func (p *cdpPage) WaitForLoad(ctx context.Context) error {
	return p.run(ctx, chromedp.WaitReady("body", chromedp.ByQuery))
}

func (p *cdpPage) Pause(context.Context) error {
	return fmt.Errorf("pause: %w", ErrUnsupported)
}

// pngQuality makes FullScreenshot encode PNG; any lower value gives JPEG.
const pngQuality = 100

func (p *cdpPage) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := p.run(ctx, chromedp.FullScreenshot(&buf, pngQuality)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
