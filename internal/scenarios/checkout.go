package scenarios

import (
	"github.com/swaglabs/shopcheck/internal/pages"
	"github.com/swaglabs/shopcheck/internal/scenario"
)

func addAndOpenCart(t *scenario.T, p *pages.Pages, product string) error {
	ctx := t.Context()
	return t.Step("add "+product+" and open the cart", func() error {
		if err := p.Products.AddProductToCart(ctx, product); err != nil {
			return err
		}
		if err := p.Products.OpenCart(ctx); err != nil {
			return err
		}
		return p.Cart.WaitLoaded(ctx)
	})
}

func problemUserCheckout(t *scenario.T) error {
	ctx := t.Context()
	p := t.Pages
	user, err := loginAs(t, p, "problem")
	if err != nil {
		return err
	}
	if err := addAndOpenCart(t, p, t.Data.Checkout().Product); err != nil {
		return err
	}

	customer := t.Customer()
	return t.Step("last name is rejected although it was entered", func() error {
		if err := p.Cart.ProceedToCheckout(ctx); err != nil {
			return err
		}
		if err := p.CheckoutInformation.SubmitInformation(ctx, customer.FirstName, customer.LastName, customer.PostalCode); err != nil {
			return err
		}
		msg, err := p.CheckoutInformation.ErrorMessage(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("checkout error", user.CheckoutError, msg); err != nil {
			return err
		}
		path, err := p.Base.Path(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("page", pages.CheckoutInformationPath, path)
	})
}

// completePurchase runs checkout from the cart and verifies the totals of
// a single product order.
func completePurchase(t *scenario.T, p *pages.Pages, productName string) error {
	ctx := t.Context()
	checkout := t.Data.Checkout()
	product, err := t.Data.Product(productName)
	if err != nil {
		return err
	}

	if err := checkoutAs(t, p); err != nil {
		return err
	}
	err = t.Step("overview totals include tax", func() error {
		names, err := p.CheckoutOverview.ItemNames(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("ordered items", []string{product.Name}, names); err != nil {
			return err
		}
		subtotal, err := p.CheckoutOverview.Subtotal(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("subtotal (cents)", product.PriceCents, subtotal); err != nil {
			return err
		}
		tax, err := p.CheckoutOverview.Tax(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("tax (cents)", checkout.Tax(product.PriceCents), tax); err != nil {
			return err
		}
		return p.CheckoutOverview.VerifyOrderTotal(ctx, checkout.Total(product.PriceCents))
	})
	if err != nil {
		return err
	}
	err = t.Step("finish the order", func() error {
		if err := p.CheckoutOverview.Finish(ctx); err != nil {
			return err
		}
		header, err := p.CheckoutComplete.Header(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("confirmation", checkout.CompleteHeader, header)
	})
	if err != nil {
		return err
	}
	if err := t.Step("back home", func() error { return p.CheckoutComplete.BackHome(ctx) }); err != nil {
		return err
	}
	return expectCartCount(t, p, 0)
}

func purchase(t *scenario.T) error {
	p := t.Pages
	product := t.Data.Checkout().Product
	if _, err := loginAs(t, p, "standard"); err != nil {
		return err
	}
	if err := addAndOpenCart(t, p, product); err != nil {
		return err
	}
	return completePurchase(t, p, product)
}
