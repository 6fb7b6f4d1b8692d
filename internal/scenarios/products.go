package scenarios

import (
	"cmp"
	"slices"

	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/scenario"
)

// expectedOrder sorts the catalog the way opt should order the listing
func expectedOrder(products []dataset.Product, opt dataset.SortOption) []dataset.Product {
	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b dataset.Product) int {
		var c int
		if opt.Field == "price" {
			c = cmp.Compare(a.PriceCents, b.PriceCents)
		} else {
			c = cmp.Compare(a.Name, b.Name)
		}
		if opt.Descending {
			c = -c
		}
		return c
	})
	return out
}

func sorting(t *scenario.T) error {
	ctx := t.Context()
	p := t.Pages
	if _, err := loginAs(t, p, "standard"); err != nil {
		return err
	}

	for _, opt := range t.Data.SortOptions() {
		want := expectedOrder(t.Data.Products(), opt)
		err := t.Step("sort by "+opt.Key, func() error {
			if err := p.Products.SortBy(ctx, opt.Value); err != nil {
				return err
			}
			if opt.Field == "price" {
				prices, err := p.Products.ProductPrices(ctx)
				if err != nil {
					return err
				}
				wantPrices := make([]int64, len(want))
				for i, w := range want {
					wantPrices[i] = w.PriceCents
				}
				return scenario.Equal("prices", wantPrices, prices)
			}
			names, err := p.Products.ProductNames(ctx)
			if err != nil {
				return err
			}
			wantNames := make([]string, len(want))
			for i, w := range want {
				wantNames[i] = w.Name
			}
			return scenario.Equal("names", wantNames, names)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func productDetail(t *scenario.T) error {
	ctx := t.Context()
	p := t.Pages
	product, err := t.Data.Product(t.Data.Checkout().Product)
	if err != nil {
		return err
	}
	if _, err := loginAs(t, p, "standard"); err != nil {
		return err
	}

	err = t.Step("detail page shows "+product.Name, func() error {
		if err := p.Products.OpenProduct(ctx, product.Name); err != nil {
			return err
		}
		if err := p.ProductDetail.WaitLoaded(ctx); err != nil {
			return err
		}
		name, err := p.ProductDetail.Name(ctx)
		if err != nil {
			return err
		}
		if err := scenario.Equal("name", product.Name, name); err != nil {
			return err
		}
		price, err := p.ProductDetail.Price(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("price (cents)", product.PriceCents, price)
	})
	if err != nil {
		return err
	}
	err = t.Step("add from the detail page", func() error {
		if err := p.ProductDetail.AddToCart(ctx); err != nil {
			return err
		}
		n, err := p.ProductDetail.CartCount(ctx)
		if err != nil {
			return err
		}
		return scenario.Equal("cart count", 1, n)
	})
	if err != nil {
		return err
	}
	return t.Step("back to products", func() error { return p.ProductDetail.BackToProducts(ctx) })
}
