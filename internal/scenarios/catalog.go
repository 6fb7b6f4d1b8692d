// Package scenarios is the catalog of Swag Labs journeys.
package scenarios

import (
	"fmt"

	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/pages"
	"github.com/swaglabs/shopcheck/internal/scenario"
)

// Tags used by the catalog
const (
	TagSmoke    = "smoke"
	TagLogin    = "login"
	TagCart     = "cart"
	TagCheckout = "checkout"
	TagProducts = "products"
	TagHandoff  = "handoff"
)

// All returns every scenario in ID order
func All() []scenario.Scenario {
	return []scenario.Scenario{
		{ID: "TC_01", Name: "successful login shows the product listing", File: "login", Tags: []string{TagSmoke, TagLogin}, Run: loginSuccess},
		{ID: "TC_02", Name: "locked out user stays on the login screen", File: "login", Tags: []string{TagSmoke, TagLogin}, Run: lockedOut},
		{ID: "TC_03", Name: "invalid credentials show validation messages", File: "login", Tags: []string{TagLogin}, Run: invalidCredentials},
		{ID: "TC_04", Name: "second user starts with an empty cart", File: "handoff", Tags: []string{TagHandoff, TagCart}, Run: handoffEmptyCart},
		{ID: "TC_05", Name: "second user checks out only their own items", File: "handoff", Tags: []string{TagHandoff, TagCheckout}, Run: handoffCheckout},
		{ID: "TC_06", Name: "problem user cannot pass checkout information", File: "checkout", Tags: []string{TagCheckout}, Run: problemUserCheckout},
		{ID: "TC_07", Name: "cart badge counts added and removed products", File: "cart", Tags: []string{TagCart}, Run: cartCount},
		{ID: "TC_08", Name: "standard user completes a purchase", File: "checkout", Tags: []string{TagSmoke, TagCheckout}, Run: purchase},
		{ID: "TC_09", Name: "sort options order the listing", File: "products", Tags: []string{TagProducts}, Run: sorting},
		{ID: "TC_10", Name: "product detail matches the catalog", File: "products", Tags: []string{TagProducts}, Run: productDetail},
	}
}

// loginAs signs user in on p and waits for the product listing
func loginAs(t *scenario.T, p *pages.Pages, key string) (dataset.User, error) {
	user, err := t.Data.User(key)
	if err != nil {
		return user, err
	}
	ctx := t.Context()
	err = t.Step(fmt.Sprintf("log in as %s", user.Username), func() error {
		if err := p.Login.Open(ctx); err != nil {
			return err
		}
		if err := p.Login.Login(ctx, user.Username, user.Password); err != nil {
			return err
		}
		return p.Products.WaitLoaded(ctx)
	})
	return user, err
}

func expectCartCount(t *scenario.T, p *pages.Pages, want int) error {
	return t.Step(fmt.Sprintf("cart badge shows %d", want), func() error {
		got, err := p.Products.CartCount(t.Context())
		if err != nil {
			return err
		}
		return scenario.Equal("cart count", want, got)
	})
}

// checkoutAs fills the information step and lands on the overview
func checkoutAs(t *scenario.T, p *pages.Pages) error {
	ctx := t.Context()
	customer := t.Customer()
	return t.Step("submit checkout information", func() error {
		if err := p.Cart.ProceedToCheckout(ctx); err != nil {
			return err
		}
		if err := p.CheckoutInformation.WaitLoaded(ctx); err != nil {
			return err
		}
		if err := p.CheckoutInformation.SubmitInformation(ctx, customer.FirstName, customer.LastName, customer.PostalCode); err != nil {
			return err
		}
		return p.CheckoutOverview.WaitLoaded(ctx)
	})
}
