package scenarios

import (
	"slices"

	"github.com/swaglabs/shopcheck/internal/scenario"
)

func cartCount(t *scenario.T) error {
	ctx := t.Context()
	p := t.Pages
	cart := t.Data.Cart()

	if _, err := loginAs(t, p, "standard"); err != nil {
		return err
	}
	if err := expectCartCount(t, p, 0); err != nil {
		return err
	}
	err := t.Step("add products", func() error {
		for _, name := range cart.Add {
			if err := p.Products.AddProductToCart(ctx, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := expectCartCount(t, p, cart.ExpectedCount); err != nil {
		return err
	}
	if err := t.Step("remove "+cart.Remove, func() error { return p.Products.RemoveProductFromCart(ctx, cart.Remove) }); err != nil {
		return err
	}
	if err := expectCartCount(t, p, cart.ExpectedCount-1); err != nil {
		return err
	}

	return t.Step("cart lists the remaining products", func() error {
		if err := p.Products.OpenCart(ctx); err != nil {
			return err
		}
		names, err := p.Cart.ItemNames(ctx)
		if err != nil {
			return err
		}
		want := slices.DeleteFunc(slices.Clone(cart.Add), func(n string) bool { return n == cart.Remove })
		return scenario.Equal("cart items", want, names)
	})
}
