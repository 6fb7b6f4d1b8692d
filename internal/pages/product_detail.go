package pages

import (
	"context"

	"github.com/swaglabs/shopcheck/internal/selectors"
)

// ProductDetailPath shows a single product
const ProductDetailPath = "/inventory-item.html"

// ProductDetailPage shows one product with its description
type ProductDetailPage struct {
	*Base
	sel selectors.Set
}

// NewProductDetailPage creates the product detail page object
func NewProductDetailPage(b *Base) *ProductDetailPage {
	return &ProductDetailPage{Base: b, sel: selectors.ProductDetail}
}

// WaitLoaded waits for the detail page of any product
func (p *ProductDetailPage) WaitLoaded(ctx context.Context) error {
	if err := p.ExpectPath(ctx, ProductDetailPath); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("name"))
}

// Name returns the product name
func (p *ProductDetailPage) Name(ctx context.Context) (string, error) {
	return p.Text(ctx, p.sel.Must("name"))
}

// Price returns the product price in cents
func (p *ProductDetailPage) Price(ctx context.Context) (int64, error) {
	text, err := p.Text(ctx, p.sel.Must("price"))
	if err != nil {
		return 0, err
	}
	return ParsePrice(text)
}

// AddToCart adds the product and waits for the remove button
func (p *ProductDetailPage) AddToCart(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("addToCart")); err != nil {
		return err
	}
	return p.WaitVisible(ctx, p.sel.Must("remove"))
}

// CartCount returns the number on the cart badge
func (p *ProductDetailPage) CartCount(ctx context.Context) (int, error) {
	return cartCount(ctx, p.Base, p.sel)
}

// BackToProducts returns to the listing
func (p *ProductDetailPage) BackToProducts(ctx context.Context) error {
	if err := p.ClickWhenReady(ctx, p.sel.Must("back")); err != nil {
		return err
	}
	return p.ExpectPath(ctx, ProductsPath)
}
