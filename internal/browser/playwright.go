package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const defaultCallTimeout = 30 * time.Second

// Playwright drives chromium, firefox or webkit through playwright-go
type Playwright struct {
	name    string
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the Playwright driver and launches one browser that
// every session shares.
func NewPlaywright(opts LaunchOptions) (*Playwright, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch opts.Browser {
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		bt = pw.Chromium
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", bt.Name(), err)
	}

	return &Playwright{name: bt.Name(), pw: pw, browser: b}, nil
}

// Name returns the browser type name
func (e *Playwright) Name() string {
	return e.name
}

// NewSession opens a fresh browser context with one page
func (e *Playwright) NewSession(ctx context.Context, opts SessionOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := &playwright.Size{Width: opts.Viewport.Width, Height: opts.Viewport.Height}
	contextOpts := playwright.BrowserNewContextOptions{Viewport: size}

	var videoDir string
	if opts.Record {
		dir, err := os.MkdirTemp("", "shopcheck-video-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create video dir: %w", err)
		}
		videoDir = dir
		contextOpts.RecordVideo = &playwright.RecordVideo{Dir: videoDir, Size: size}
	}

	bctx, err := e.browser.NewContext(contextOpts)
	if err != nil {
		removeDir(videoDir)
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	bctx.SetDefaultTimeout(float64(timeout.Milliseconds()))
	bctx.SetDefaultNavigationTimeout(float64(timeout.Milliseconds()))

	if opts.Record {
		if err := bctx.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		}); err != nil {
			_ = bctx.Close()
			removeDir(videoDir)
			return nil, fmt.Errorf("could not start tracing: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		removeDir(videoDir)
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &playwrightSession{
		bctx:     bctx,
		page:     &playwrightPage{page: page, timeout: timeout},
		tracing:  opts.Record,
		videoDir: videoDir,
	}, nil
}

// Close shuts down the browser and the driver
func (e *Playwright) Close() error {
	return errors.Join(e.browser.Close(), e.pw.Stop())
}

type playwrightSession struct {
	bctx     playwright.BrowserContext
	page     *playwrightPage
	tracing  bool
	videoDir string
}

func (s *playwrightSession) Page() Page {
	return s.page
}

func (s *playwrightSession) Close(_ context.Context, opts CloseOptions) (Artifacts, error) {
	defer removeDir(s.videoDir)

	arts := Artifacts{Dir: opts.Dir}
	var errs []error

	if opts.Keep && opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			errs = append(errs, fmt.Errorf("failed to create artifact dir: %w", err))
			opts.Keep = false
		}
	}
	keep := opts.Keep && opts.Dir != ""

	if s.tracing {
		if keep {
			path := filepath.Join(opts.Dir, "trace.zip")
			if err := s.bctx.Tracing().Stop(path); err != nil {
				errs = append(errs, fmt.Errorf("failed to save trace: %w", err))
			} else {
				arts.Trace = path
			}
		} else if err := s.bctx.Tracing().Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop trace: %w", err))
		}
	}

	video := s.page.page.Video()
	if err := s.bctx.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser context: %w", err))
	}

	if video != nil {
		if keep {
			path := filepath.Join(opts.Dir, "video.webm")
			if err := video.SaveAs(path); err != nil {
				errs = append(errs, fmt.Errorf("failed to save video: %w", err))
			} else {
				arts.Video = path
			}
		}
		if err := video.Delete(); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete video: %w", err))
		}
	}

	return arts, errors.Join(errs...)
}

type playwrightPage struct {
	page    playwright.Page
	timeout time.Duration
}

func (p *playwrightPage) ms(ctx context.Context) *float64 {
	return playwright.Float(remaining(ctx, p.timeout))
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   p.ms(ctx),
	})
	return err
}

func (p *playwrightPage) URL(context.Context) (string, error) {
	return p.page.URL(), nil
}

func (p *playwrightPage) Click(ctx context.Context, selector string) error {
	return p.page.Locator(selector).First().Click(playwright.LocatorClickOptions{Timeout: p.ms(ctx)})
}

func (p *playwrightPage) Fill(ctx context.Context, selector, value string) error {
	return p.page.Locator(selector).First().Fill(value, playwright.LocatorFillOptions{Timeout: p.ms(ctx)})
}

func (p *playwrightPage) SelectOption(ctx context.Context, selector, value string) error {
	_, err := p.page.Locator(selector).First().SelectOption(
		playwright.SelectOptionValues{Values: playwright.StringSlice(value)},
		playwright.LocatorSelectOptionOptions{Timeout: p.ms(ctx)},
	)
	return err
}

func (p *playwrightPage) IsVisible(_ context.Context, selector string) (bool, error) {
	return p.page.Locator(selector).First().IsVisible()
}

func (p *playwrightPage) IsEnabled(ctx context.Context, selector string) (bool, error) {
	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return false, err
	}
	return loc.First().IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: p.ms(ctx)})
}

func (p *playwrightPage) Count(_ context.Context, selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *playwrightPage) Text(ctx context.Context, selector string) (string, error) {
	s, err := p.page.Locator(selector).First().TextContent(playwright.LocatorTextContentOptions{Timeout: p.ms(ctx)})
	return strings.TrimSpace(s), err
}

func (p *playwrightPage) Texts(_ context.Context, selector string) ([]string, error) {
	texts, err := p.page.Locator(selector).AllTextContents()
	if err != nil {
		return nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

func (p *playwrightPage) Evaluate(_ context.Context, script string, arg any) (any, error) {
	return p.page.Evaluate(script, arg)
}

func (p *playwrightPage) WaitForLoad(ctx context.Context) error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: p.ms(ctx),
	})
}

func (p *playwrightPage) Pause(context.Context) error {
	return p.page.Pause()
}

func (p *playwrightPage) Screenshot(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
		Timeout:  p.ms(ctx),
	})
	return err
}

func removeDir(dir string) {
	if dir != "" {
		_ = os.RemoveAll(dir)
	}
}
