package pages

import (
	"context"

	"github.com/swaglabs/shopcheck/internal/selectors"
)

// CartPath is the cart screen
const CartPath = "/cart.html"

// CartPage lists what the session has put in its cart
type CartPage struct {
	*Base
	sel selectors.Set
}

// NewCartPage creates the cart page object
func NewCartPage(b *Base) *CartPage {
	return &CartPage{Base: b, sel: selectors.Cart}
}

// WaitLoaded waits for the cart screen
func (p *CartPage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, CartPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("cartList"))
}

// ItemNames returns the names of the products in the cart, which may be none
func (p *CartPage) ItemNames(ctx context.Context) ([]string, error) {
	if err := p.WaitLoaded(ctx); err != nil {
		return nil, err
	}
	return p.Texts(ctx, p.sel.Must("itemName"))
}

// CartCount returns the number on the cart badge
func (p *CartPage) CartCount(ctx context.Context) (int, error) {
	return cartCount(ctx, p.Base, p.sel)
}

// RemoveItem removes one product and waits for its row to go
func (p *CartPage) RemoveItem(ctx context.Context, name string) error {
	remove := selectors.RemoveFromCart(name)
	if err := p.ClickWhenReady(ctx, remove); err != nil {
		return err
	}
	return p.WaitHidden(ctx, remove)
}

// ProceedToCheckout starts checkout
func (p *CartPage) ProceedToCheckout(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("checkout")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, CheckoutInformationPath)
}

// ContinueShopping returns to the listing
func (p *CartPage) ContinueShopping(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("continueShopping")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, ProductsPath)
}
