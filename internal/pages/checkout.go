package pages

import (
	"context"

	"github.com/swaglabs/shopcheck/internal/selectors"
)

// Checkout screens
const (
	CheckoutInformationPath = "/checkout-step-one.html"
	CheckoutOverviewPath    = "/checkout-step-two.html"
	CheckoutCompletePath    = "/checkout-complete.html"
)

// CheckoutInformationPage collects the customer's name and postal code
type CheckoutInformationPage struct {
	*Base
	sel selectors.Set
}

// NewCheckoutInformationPage creates the checkout information page object
func NewCheckoutInformationPage(b *Base) *CheckoutInformationPage {
	return &CheckoutInformationPage{Base: b, sel: selectors.CheckoutInformation}
}

// WaitLoaded waits for the information form
func (p *CheckoutInformationPage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, CheckoutInformationPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("firstName"))
}

// SubmitInformation fills the form and presses continue. The result is
// either the overview or a validation error on the same page.
func (p *CheckoutInformationPage) SubmitInformation(ctx context.Context, first, last, postalCode string) error {
	fields := []struct{ name, value string }{
		{"firstName", first},
		{"lastName", last},
		{"postalCode", postalCode},
	}
	for _, f := range fields {
		if err := p.FillWhenReady(ctx, p.sel.Must(f.name), f.value); err != nil {
			return err
		}
	}
	return p.ClickWhenReady(ctx, p.sel.Must("continue"))
}

// ErrorMessage waits for the validation error and returns it
func (p *CheckoutInformationPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.Text(ctx, p.sel.Must(selectors.ErrorBanner))
}

// Cancel abandons checkout and returns to the cart
func (p *CheckoutInformationPage) Cancel(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("cancel")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, CartPath)
}

// CheckoutOverviewPage summarises the order before it is placed
type CheckoutOverviewPage struct {
	*Base
	sel selectors.Set
}

// NewCheckoutOverviewPage creates the checkout overview page object
func NewCheckoutOverviewPage(b *Base) *CheckoutOverviewPage {
	return &CheckoutOverviewPage{Base: b, sel: selectors.CheckoutOverview}
}

// WaitLoaded waits for the overview with its totals
func (p *CheckoutOverviewPage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, CheckoutOverviewPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("total"))
}

// ItemNames lists the products being ordered
func (p *CheckoutOverviewPage) ItemNames(ctx context.Context) ([]string, error) {
	if err := p.WaitLoaded(ctx); err != nil {
		return nil, err
	}
	return p.Texts(ctx, p.sel.Must("itemName"))
}

func (p *CheckoutOverviewPage) amount(ctx context.Context, name string) (int64, error) {
	text, err := p.Text(ctx, p.sel.Must(name))
	if err != nil {
		return 0, err
	}
	return ParsePrice(text)
}

// Subtotal returns the item total in cents
func (p *CheckoutOverviewPage) Subtotal(ctx context.Context) (int64, error) {
	return p.amount(ctx, "subtotal")
}

// Tax returns the tax in cents
func (p *CheckoutOverviewPage) Tax(ctx context.Context) (int64, error) {
	return p.amount(ctx, "tax")
}

// Total returns the order total in cents
func (p *CheckoutOverviewPage) Total(ctx context.Context) (int64, error) {
	return p.amount(ctx, "total")
}

// VerifyOrderTotal checks the displayed total, returning an
// *AssertionError on mismatch.
func (p *CheckoutOverviewPage) VerifyOrderTotal(ctx context.Context, expectedCents int64) error {
	got, err := p.Total(ctx)
	if err != nil {
		return err
	}
	if got != expectedCents {
		return &AssertionError{What: "order total (cents)", Want: expectedCents, Got: got}
	}
	return nil
}

// Finish places the order
func (p *CheckoutOverviewPage) Finish(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("finish")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, CheckoutCompletePath)
}

// CheckoutCompletePage confirms the order
type CheckoutCompletePage struct {
	*Base
	sel selectors.Set
}

// NewCheckoutCompletePage creates the confirmation page object
func NewCheckoutCompletePage(b *Base) *CheckoutCompletePage {
	return &CheckoutCompletePage{Base: b, sel: selectors.CheckoutComplete}
}

// WaitLoaded waits for the confirmation screen
func (p *CheckoutCompletePage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, CheckoutCompletePath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("header"))
}

// Header returns the confirmation heading
func (p *CheckoutCompletePage) Header(ctx context.Context) (string, error) {
	return p.Text(ctx, p.sel.Must("header"))
}

// BackHome returns to the listing with an empty cart
func (p *CheckoutCompletePage) BackHome(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("backHome")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, ProductsPath)
}
