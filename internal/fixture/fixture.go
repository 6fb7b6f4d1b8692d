// Package fixture hands every test its own browser session with a full set
// of page objects, and guarantees the session is closed afterwards.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/swaglabs/shopcheck/internal/browser"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/pages"
	"go.uber.org/zap"
)

// Options configures a Provider
type Options struct {
	Engine    browser.Engine
	Viewport  browser.Viewport
	Pages     pages.Options
	Artifacts config.ArtifactPolicy
	// OutputDir receives artifacts/<test>/ directories.
	OutputDir string
	// CallTimeout bounds engine calls made without a deadline.
	CallTimeout time.Duration
	Logger      *zap.Logger
}

// Provider creates fixtures. It is safe for concurrent use.
type Provider struct {
	opts Options
}

// NewProvider creates a Provider
func NewProvider(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Artifacts == "" {
		opts.Artifacts = config.ArtifactsOnFailure
	}
	return &Provider{opts: opts}
}

type session struct {
	browser browser.Session
	label   string
}

// Fixture is the set of sessions owned by one test
type Fixture struct {
	Name  string
	Pages *pages.Pages

	provider *Provider
	log      *zap.Logger

	mu       sync.Mutex
	sessions []session
	released bool
}

// Acquire opens an isolated session for testName and builds its page objects
func (p *Provider) Acquire(ctx context.Context, testName string) (*Fixture, error) {
	f := &Fixture{
		Name:     testName,
		provider: p,
		log:      p.opts.Logger.With(zap.String("test", testName)),
	}
	pg, err := f.open(ctx, "main")
	if err != nil {
		return nil, err
	}
	f.Pages = pg
	return f, nil
}

// Open starts an additional isolated session, for journeys where a second
// user continues in a fresh browser. It is released with the fixture.
func (f *Fixture) Open(ctx context.Context) (*pages.Pages, error) {
	f.mu.Lock()
	n := len(f.sessions)
	f.mu.Unlock()
	return f.open(ctx, fmt.Sprintf("session-%d", n+1))
}

func (f *Fixture) open(ctx context.Context, label string) (*pages.Pages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return nil, errors.New("fixture already released")
	}

	opts := f.provider.opts
	s, err := opts.Engine.NewSession(ctx, browser.SessionOptions{
		Viewport:       opts.Viewport,
		Record:         opts.Artifacts != config.ArtifactsNever,
		DefaultTimeout: opts.CallTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	f.sessions = append(f.sessions, session{browser: s, label: label})
	f.log.Debug("Opened browser session", zap.String("session", label), zap.String("engine", opts.Engine.Name()))
	return pages.New(s.Page(), opts.Pages), nil
}

// ArtifactDir is where the artifacts of testName are written
func (p *Provider) ArtifactDir(testName string) string {
	return filepath.Join(p.opts.OutputDir, "artifacts", SafeName(testName))
}

func (f *Fixture) keep(failed bool) bool {
	switch f.provider.opts.Artifacts {
	case config.ArtifactsAlways:
		return true
	case config.ArtifactsNever:
		return false
	default:
		return failed
	}
}

// Release closes every session of the fixture. On failure, or when the
// policy says always, a screenshot is taken and the trace and video are
// kept; otherwise recordings are discarded. Release is safe to call more
// than once; later calls do nothing.
func (f *Fixture) Release(ctx context.Context, failed bool) ([]browser.Artifacts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return nil, nil
	}
	f.released = true

	keep := f.keep(failed)
	root := f.provider.ArtifactDir(f.Name)

	var (
		kept []browser.Artifacts
		errs []error
	)
	for i, s := range f.sessions {
		dir := root
		if i > 0 {
			dir = filepath.Join(root, s.label)
		}

		var shot string
		if keep {
			path := filepath.Join(dir, "screenshot.png")
			if err := s.browser.Page().Screenshot(ctx, path); err != nil {
				f.log.Warn("Failed to capture screenshot", zap.String("session", s.label), zap.Error(err))
			} else {
				shot = path
			}
		}

		arts, err := s.browser.Close(ctx, browser.CloseOptions{Keep: keep, Dir: dir})
		if err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.label, err))
		}
		arts.Screenshot = shot
		if !arts.Empty() {
			kept = append(kept, arts)
		}
	}

	f.log.Debug("Released fixture", zap.Int("sessions", len(f.sessions)), zap.Bool("kept_artifacts", len(kept) > 0))
	return kept, errors.Join(errs...)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// SafeName turns a test name into a directory name
func SafeName(name string) string {
	s := unsafeChars.ReplaceAllString(name, "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		return "test"
	}
	return s
}
