package models

import (
	"errors"
	"fmt"
	"sort"
)

// Product represents a catalog item
type Product struct {
	ID          int
	Name        string
	Description string
	PriceCents  int64
}

// SortOrder identifies one of the inventory sort options
type SortOrder string

// Inventory sort options, matching the values of the sort <select>
const (
	SortNameAsc   SortOrder = "az"
	SortNameDesc  SortOrder = "za"
	SortPriceAsc  SortOrder = "lohi"
	SortPriceDesc SortOrder = "hilo"
)

// Catalog errors
var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

// FormattedPrice returns the price formatted as dollars
func (p Product) FormattedPrice() string {
	return FormatCents(p.PriceCents)
}

// FormatCents formats an amount in cents as "$12.34"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// ParseSortOrder validates a sort option value; empty means name ascending
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortNameAsc, nil
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
	}
}

// Catalog is an immutable set of products
type Catalog struct {
	products []Product
	byID     map[int]Product
}

// NewCatalog creates a catalog from the given products
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Get returns the product with the given ID
func (c *Catalog) Get(id int) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: id %d", ErrUnknownProduct, id)
	}
	return p, nil
}

// Sorted returns a copy of the products in the requested order
func (c *Catalog) Sorted(order SortOrder) []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)

	var less func(i, j int) bool
	switch order {
	case SortNameDesc:
		less = func(i, j int) bool { return out[i].Name > out[j].Name }
	case SortPriceAsc:
		less = func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents }
	case SortPriceDesc:
		less = func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents }
	default:
		less = func(i, j int) bool { return out[i].Name < out[j].Name }
	}
	sort.SliceStable(out, less)
	return out
}

// DefaultCatalog returns the Swag Labs product range
func DefaultCatalog() *Catalog {
	return NewCatalog([]Product{
		{ID: 4, Name: "Sauce Labs Backpack", PriceCents: 2999,
			Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection."},
		{ID: 0, Name: "Sauce Labs Bike Light", PriceCents: 999,
			Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included."},
		{ID: 1, Name: "Sauce Labs Bolt T-Shirt", PriceCents: 1599,
			Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt."},
		{ID: 5, Name: "Sauce Labs Fleece Jacket", PriceCents: 4999,
			Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office."},
		{ID: 2, Name: "Sauce Labs Onesie", PriceCents: 799,
			Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel."},
		{ID: 3, Name: "Test.allTheThings() T-Shirt (Red)", PriceCents: 1599,
			Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton."},
	})
}
