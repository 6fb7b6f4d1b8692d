package scenarios

import (
	"github.com/swaglabs/shopcheck/internal/scenario"
)

// handoffEmptyCart: user A fills a cart and logs out; user B, in a fresh
// session, must not see A's items.
func handoffEmptyCart(t *scenario.T) error {
	ctx := t.Context()
	a := t.Pages
	product := t.Data.Checkout().Product

	if _, err := loginAs(t, a, "standard"); err != nil {
		return err
	}
	if err := t.Step("user A adds "+product, func() error { return a.Products.AddProductToCart(ctx, product) }); err != nil {
		return err
	}
	if err := expectCartCount(t, a, 1); err != nil {
		return err
	}
	if err := t.Step("user A logs out", func() error { return a.Products.Logout(ctx) }); err != nil {
		return err
	}

	b, err := t.NewSession()
	if err != nil {
		return err
	}
	if _, err := loginAs(t, b, "performance_glitch"); err != nil {
		return err
	}
	if err := expectCartCount(t, b, 0); err != nil {
		return err
	}
	return t.Step("user B's cart is empty", func() error {
		if err := b.Products.OpenCart(ctx); err != nil {
			return err
		}
		names, err := b.Cart.ItemNames(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("cart items", 0, len(names))
	})
}

// handoffCheckout: user A abandons checkout with one product; user B, in a
// fresh session, buys a different product and the order holds only B's.
func handoffCheckout(t *scenario.T) error {
	ctx := t.Context()
	a := t.Pages
	cart := t.Data.Cart()
	abandoned := cart.Remove
	bought := t.Data.Checkout().Product

	if _, err := loginAs(t, a, "problem"); err != nil {
		return err
	}
	if err := addAndOpenCart(t, a, abandoned); err != nil {
		return err
	}
	err := t.Step("user A abandons checkout", func() error {
		if err := a.Cart.ProceedToCheckout(ctx); err != nil {
			return err
		}
		return a.CheckoutInformation.Cancel(ctx)
	})
	if err != nil {
		return err
	}

	b, err := t.NewSession()
	if err != nil {
		return err
	}
	if _, err := loginAs(t, b, "standard"); err != nil {
		return err
	}
	if err := addAndOpenCart(t, b, bought); err != nil {
		return err
	}
	err = t.Step("user B's cart holds only their product", func() error {
		names, err := b.Cart.ItemNames(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("cart items", []string{bought}, names)
	})
	if err != nil {
		return err
	}
	return completePurchase(t, b, bought)
}
