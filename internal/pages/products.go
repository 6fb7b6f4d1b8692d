package pages

import (
	"context"
	"fmt"
	"strconv"

	"github.com/swaglabs/shopcheck/internal/selectors"
)

// ProductsPath is the product listing
const ProductsPath = "/inventory.html"

// ProductsPage is the product listing shown after login
type ProductsPage struct {
	*Base
	sel selectors.Set
}

// NewProductsPage creates the product listing page object
func NewProductsPage(b *Base) *ProductsPage {
	return &ProductsPage{Base: b, sel: selectors.Products}
}

// WaitLoaded waits until the browser shows the product listing
func (p *ProductsPage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, ProductsPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("inventoryList"))
}

// IsLoaded reports whether the product listing is showing right now
func (p *ProductsPage) IsLoaded(ctx context.Context) (bool, error) {
	path, err := p.Path(ctx)
	if err != nil || path != ProductsPath {
		return false, err
	}
	return p.IsVisible(ctx, p.sel.Must("inventoryList"))
}

// Title returns the page heading
func (p *ProductsPage) Title(ctx context.Context) (string, error) {
	return p.Text(ctx, p.sel.Must(selectors.Title))
}

// AddProductToCart adds a product and waits for its button to turn into
// a remove button.
func (p *ProductsPage) AddProductToCart(ctx context.Context, name string) error {
	if err := p.ClickWhenReady(ctx, selectors.AddToCart(name)); err != nil {
		return err
	}
	return p.WaitVisible(ctx, selectors.RemoveFromCart(name))
}

// RemoveProductFromCart removes a product from the listing page
func (p *ProductsPage) RemoveProductFromCart(ctx context.Context, name string) error {
	if err := p.ClickWhenReady(ctx, selectors.RemoveFromCart(name)); err != nil {
		return err
	}
	return p.WaitVisible(ctx, selectors.AddToCart(name))
}

// CartCount returns the number on the cart badge; no badge means zero
func (p *ProductsPage) CartCount(ctx context.Context) (int, error) {
	return cartCount(ctx, p.Base, p.sel)
}

func cartCount(ctx context.Context, b *Base, sel selectors.Set) (int, error) {
	if err := b.WaitForLoad(ctx); err != nil {
		return 0, err
	}
	badge := sel.Must(selectors.CartBadge)
	visible, err := b.IsVisible(ctx, badge)
	if err != nil || !visible {
		return 0, err
	}
	text, err := b.Text(ctx, badge)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge %q is not a number: %w", text, err)
	}
	return n, nil
}

// SortBy chooses a sort option value such as "lohi" and waits for the
// listing to reload in that order.
func (p *ProductsPage) SortBy(ctx context.Context, option string) error {
	if err := p.SelectWhenReady(ctx, p.sel.Must("sort"), option); err != nil {
		return err
	}
	if err := p.ExpectQuery(ctx, "sort", option); err != nil {
		return err
	}
	return p.WaitLoaded(ctx)
}

// ProductNames returns the product names in display order
func (p *ProductsPage) ProductNames(ctx context.Context) ([]string, error) {
	if err := p.WaitVisible(ctx, p.sel.Must("itemName")); err != nil {
		return nil, err
	}
	return p.Texts(ctx, p.sel.Must("itemName"))
}

// ProductPrices returns the product prices in cents, in display order
func (p *ProductsPage) ProductPrices(ctx context.Context) ([]int64, error) {
	if err := p.WaitVisible(ctx, p.sel.Must("itemPrice")); err != nil {
		return nil, err
	}
	texts, err := p.Texts(ctx, p.sel.Must("itemPrice"))
	if err != nil {
		return nil, err
	}
	return parsePrices(texts)
}

// OpenProduct follows a product's title link to its detail page
func (p *ProductsPage) OpenProduct(ctx context.Context, name string) error {
	if err := p.ClickWhenReady(ctx, selectors.ProductLink(name)); err != nil {
		return err
	}
	return p.ExpectPath(ctx, ProductDetailPath)
}

// OpenCart follows the cart link
func (p *ProductsPage) OpenCart(ctx context.Context) error {
	return openCart(ctx, p.Base, p.sel)
}

func openCart(ctx context.Context, b *Base, sel selectors.Set) error {
	if err := b.ClickWhenReady(ctx, sel.Must(selectors.CartLink)); err != nil {
		return err
	}
	return b.ExpectPath(ctx, CartPath)
}

// Logout signs out through the side menu and waits for the login form
func (p *ProductsPage) Logout(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must(selectors.MenuButton)); err != nil {
		return err
	}
	if err := p.ClickWhenReady(ctx, p.sel.Must(selectors.Logout)); err != nil {
		return err
	}
	return p.ExpectPath(ctx, LoginPath)
}
