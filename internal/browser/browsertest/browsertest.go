// Package browsertest provides an in-memory browser engine for unit tests.
// Pages hold a map of selector to elements that tests edit directly; clicks
// and selections run handlers registered by the test.
package browsertest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/swaglabs/shopcheck/internal/browser"
)

// Element is one node matched by a selector
type Element struct {
	Text    string
	Visible bool
	Enabled bool
}

// Page is a scriptable browser.Page. The zero value is not usable; call
// NewPage.
type Page struct {
	mu       sync.Mutex
	url      string
	elements map[string][]Element
	values   map[string]string
	clicks   map[string]func() error
	selects  map[string]func(value string) error
	calls    []string
	pauses   int

	// GotoFunc replaces the default navigation, which only records the URL.
	GotoFunc func(url string) error
	// EvaluateFunc replaces the default Evaluate, which treats a string
	// argument as a selector and runs its click handler.
	EvaluateFunc func(script string, arg any) (any, error)
	// QueryErrFunc is consulted by IsVisible, IsEnabled and URL before they
	// answer. A non-nil result is returned as the query error. query is
	// "visible <selector>", "enabled <selector>" or "url".
	QueryErrFunc func(query string) error
}

// NewPage returns an empty page at about:blank
func NewPage() *Page {
	return &Page{
		url:      "about:blank",
		elements: map[string][]Element{},
		values:   map[string]string{},
		clicks:   map[string]func() error{},
		selects:  map[string]func(string) error{},
	}
}

var _ browser.Page = (*Page)(nil)

// Set replaces the elements matched by selector
func (p *Page) Set(selector string, els ...Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(els) == 0 {
		delete(p.elements, selector)
		return
	}
	p.elements[selector] = append([]Element(nil), els...)
}

// Show makes selector match one visible, enabled element with text
func (p *Page) Show(selector, text string) {
	p.Set(selector, Element{Text: text, Visible: true, Enabled: true})
}

// ShowAll makes selector match one visible element per text
func (p *Page) ShowAll(selector string, texts ...string) {
	els := make([]Element, len(texts))
	for i, t := range texts {
		els[i] = Element{Text: t, Visible: true, Enabled: true}
	}
	p.Set(selector, els...)
}

// Remove drops selector from the page
func (p *Page) Remove(selector string) {
	p.Set(selector)
}

// SetURL changes the current URL without recording a navigation
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// OnClick registers the effect of clicking selector
func (p *Page) OnClick(selector string, fn func() error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clicks[selector] = fn
}

// OnSelect registers the effect of choosing an option of selector
func (p *Page) OnSelect(selector string, fn func(value string) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selects[selector] = fn
}

// Value returns what was last filled into or selected on selector
func (p *Page) Value(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[selector]
}

// Calls returns the recorded operations, such as "click #a"
func (p *Page) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// Pauses returns how many times Pause was called
func (p *Page) Pauses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauses
}

func (p *Page) record(format string, args ...any) {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

// first returns the first element of selector, or an error shaped like an
// engine timeout when nothing matches.
func (p *Page) first(selector string) (Element, error) {
	els := p.elements[selector]
	if len(els) == 0 {
		return Element{}, fmt.Errorf("no element matches %s", selector)
	}
	return els[0], nil
}

func (p *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.record("goto %s", url)
	fn := p.GotoFunc
	if fn == nil {
		p.url = url
	}
	p.mu.Unlock()
	if fn != nil {
		return fn(url)
	}
	return nil
}

func (p *Page) queryErr(query string) error {
	p.mu.Lock()
	fn := p.QueryErrFunc
	p.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(query)
}

func (p *Page) URL(context.Context) (string, error) {
	if err := p.queryErr("url"); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	el, err := p.first(selector)
	if err == nil && (!el.Visible || !el.Enabled) {
		err = fmt.Errorf("element %s is not actionable", selector)
	}
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.record("click %s", selector)
	fn := p.clicks[selector]
	p.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return nil
}

func (p *Page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.first(selector); err != nil {
		return err
	}
	p.record("fill %s %s", selector, value)
	p.values[selector] = value
	return nil
}

func (p *Page) SelectOption(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	if _, err := p.first(selector); err != nil {
		p.mu.Unlock()
		return err
	}
	p.record("select %s %s", selector, value)
	p.values[selector] = value
	fn := p.selects[selector]
	p.mu.Unlock()

	if fn != nil {
		return fn(value)
	}
	return nil
}

func (p *Page) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := p.queryErr("visible " + selector); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.first(selector)
	return err == nil && el.Visible, nil
}

func (p *Page) IsEnabled(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := p.queryErr("enabled " + selector); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.first(selector)
	return err == nil && el.Enabled, nil
}

func (p *Page) Count(_ context.Context, selector string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.elements[selector]), nil
}

func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.first(selector)
	return el.Text, err
}

func (p *Page) Texts(_ context.Context, selector string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	els := p.elements[selector]
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Text
	}
	return out, nil
}

func (p *Page) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	fn := p.EvaluateFunc
	p.record("evaluate %v", arg)
	if fn != nil {
		p.mu.Unlock()
		return fn(script, arg)
	}
	selector, ok := arg.(string)
	if !ok {
		p.mu.Unlock()
		return nil, nil
	}
	if _, err := p.first(selector); err != nil {
		p.mu.Unlock()
		return false, nil
	}
	click := p.clicks[selector]
	p.mu.Unlock()

	if click != nil {
		if err := click(); err != nil {
			return nil, err
		}
	}
	return true, nil
}

func (p *Page) WaitForLoad(ctx context.Context) error {
	return ctx.Err()
}

func (p *Page) Pause(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses++
	return nil
}

func (p *Page) Screenshot(_ context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("fake png"), 0o644)
}

// Session is an in-memory browser.Session
type Session struct {
	mu        sync.Mutex
	page      *Page
	Options   browser.SessionOptions
	closed    bool
	closeOpts browser.CloseOptions
	// CloseErr is returned from Close when set.
	CloseErr error
}

var _ browser.Session = (*Session)(nil)

// FakePage returns the concrete page for test setup
func (s *Session) FakePage() *Page {
	return s.page
}

func (s *Session) Page() browser.Page {
	return s.page
}

// Close records the options and writes a placeholder trace when asked to
// keep recordings.
func (s *Session) Close(_ context.Context, opts browser.CloseOptions) (browser.Artifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return browser.Artifacts{}, fmt.Errorf("session closed twice")
	}
	s.closed = true
	s.closeOpts = opts

	arts := browser.Artifacts{Dir: opts.Dir}
	if opts.Keep && opts.Dir != "" && s.Options.Record {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return arts, err
		}
		arts.Trace = filepath.Join(opts.Dir, "trace.zip")
		if err := os.WriteFile(arts.Trace, []byte("fake trace"), 0o644); err != nil {
			return arts, err
		}
	}
	return arts, s.CloseErr
}

// Closed reports whether Close ran and with which options
func (s *Session) Closed() (bool, browser.CloseOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed, s.closeOpts
}

// Engine is an in-memory browser.Engine
type Engine struct {
	mu       sync.Mutex
	sessions []*Session
	closed   bool

	// Setup runs on every new page before it is handed out.
	Setup func(p *Page)
	// Err makes NewSession fail.
	Err error
}

var _ browser.Engine = (*Engine)(nil)

func (e *Engine) Name() string {
	return "fake"
}

func (e *Engine) NewSession(ctx context.Context, opts browser.SessionOptions) (browser.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	page := NewPage()
	if e.Setup != nil {
		e.Setup(page)
	}
	s := &Session{page: page, Options: opts}
	e.sessions = append(e.sessions, s)
	return s, nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Sessions returns every session opened so far
func (e *Engine) Sessions() []*Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Session(nil), e.sessions...)
}

// Open reports how many sessions are not yet closed
func (e *Engine) Open() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, s := range e.sessions {
		if closed, _ := s.Closed(); !closed {
			n++
		}
	}
	return n
}
