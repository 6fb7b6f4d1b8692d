package scenarios

import (
	"fmt"

	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/scenario"
)

func loginSuccess(t *scenario.T) error {
	ctx := t.Context()
	p := t.Pages
	for _, user := range t.Data.UsersWithOutcome(dataset.OutcomeSuccess) {
		if _, err := loginAs(t, p, user.Key); err != nil {
			return err
		}
		err := t.Step("listing is titled Products", func() error {
			title, err := p.Products.Title(ctx)
			if err != nil {
				return err
			}
			return scenario.Equal("page title", "Products", title)
		})
		if err != nil {
			return err
		}
		if err := t.Step("log out", func() error { return p.Products.Logout(ctx) }); err != nil {
			return err
		}
	}
	return nil
}

// expectLoginRejected submits user and checks the banner, the URL and
// that the listing never appears.
func expectLoginRejected(t *scenario.T, user dataset.User) error {
	ctx := t.Context()
	p := t.Pages
	name := user.Username
	if name == "" {
		name = "<empty>"
	}
	return t.Step(fmt.Sprintf("login as %s is rejected", name), func() error {
		if err := p.Login.Open(ctx); err != nil {
			return err
		}
		if err := p.Login.Login(ctx, user.Username, user.Password); err != nil {
			return err
		}
		msg, err := p.Login.ErrorMessage(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("login error", user.Message, msg); err != nil {
			return err
		}
		shown, err := p.Login.IsDisplayed(ctx)
		if err != nil {
			return err
		}
		if err := scenario.True("login form still displayed", shown); err != nil {
			return err
		}
		loaded, err := p.Products.IsLoaded(ctx)
		if err != nil {
			return err
		}
		return scenario.True("product listing not shown", !loaded)
	})
}

func lockedOut(t *scenario.T) error {
	for _, user := range t.Data.UsersWithOutcome(dataset.OutcomeLockedOut) {
		if err := expectLoginRejected(t, user); err != nil {
			return err
		}
	}
	return nil
}

func invalidCredentials(t *scenario.T) error {
	for _, user := range t.Data.UsersWithOutcome(dataset.OutcomeValidationError) {
		if err := expectLoginRejected(t, user); err != nil {
			return err
		}
	}
	return nil
}
