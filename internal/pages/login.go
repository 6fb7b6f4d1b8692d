package pages

import (
	"context"

	"github.com/swaglabs/shopcheck/internal/selectors"
)

// LoginPath is where the login form lives
const LoginPath = "/"

// LoginPage is the storefront entry screen
type LoginPage struct {
	*Base
	sel selectors.Set
}

// NewLoginPage creates the login page object
func NewLoginPage(b *Base) *LoginPage {
	return &LoginPage{Base: b, sel: selectors.Login}
}

// Open navigates to the login form
func (p *LoginPage) Open(ctx context.Context) error {
	if err := p.Base.Open(ctx, LoginPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("username"))
}

// Login submits the credentials. It does not wait for the result, which
// may be the product listing or an error banner.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.FillWhenReady(ctx, p.sel.Must("username"), username); err != nil {
		return err
	}
	if err := p.FillWhenReady(ctx, p.sel.Must("password"), password); err != nil {
		return err
	}
	return p.ClickWhenReady(ctx, p.sel.Must("loginButton"))
}

// ErrorMessage waits for the error banner and returns its text
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.Text(ctx, p.sel.Must(selectors.ErrorBanner))
}

// IsDisplayed reports whether the browser is on the login form
func (p *LoginPage) IsDisplayed(ctx context.Context) (bool, error) {
	path, err := p.Path(ctx)
	if err != nil || path != LoginPath {
		return false, err
	}
	return p.IsVisible(ctx, p.sel.Must("loginButton"))
}
