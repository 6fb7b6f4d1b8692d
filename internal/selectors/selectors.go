// Package selectors is the DOM contract between the storefront templates and
// the page objects that drive them. Every locator is a CSS selector, most of
// them on data-test attributes.
package selectors

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry maps a logical element name to its locator
type Entry struct {
	Name    string
	Locator string
}

// Set is the registry of one page
type Set struct {
	Page    string
	entries map[string]string
	order   []string
}

// NewSet builds a registry. Duplicate names panic since registries are
// package-level literals.
func NewSet(page string, entries ...Entry) Set {
	s := Set{Page: page, entries: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, dup := s.entries[e.Name]; dup {
			panic(fmt.Sprintf("selectors: duplicate entry %q on page %q", e.Name, page))
		}
		s.entries[e.Name] = e.Locator
		s.order = append(s.order, e.Name)
	}
	return s
}

// Lookup returns the locator registered under name
func (s Set) Lookup(name string) (string, bool) {
	loc, ok := s.entries[name]
	return loc, ok
}

// Must returns the locator registered under name and panics when it is
// missing.
func (s Set) Must(name string) string {
	loc, ok := s.entries[name]
	if !ok {
		panic(fmt.Sprintf("selectors: no entry %q on page %q", name, s.Page))
	}
	return loc
}

// Entries lists the registry in declaration order
func (s Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Entry{Name: name, Locator: s.entries[name]})
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a product name into the suffix used by its per-product
// data-test attributes: "Sauce Labs Bolt T-Shirt" becomes
// "sauce-labs-bolt-t-shirt".
func Slug(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// DataTest returns the attribute selector for a data-test value
func DataTest(value string) string {
	return fmt.Sprintf(`[data-test=%q]`, value)
}

// AddToCart is the add button of one product, on the listing or detail page
func AddToCart(product string) string {
	return DataTest("add-to-cart-" + Slug(product))
}

// RemoveFromCart is the remove button of one product
func RemoveFromCart(product string) string {
	return DataTest("remove-" + Slug(product))
}

// ProductLink is the title link of one product on the listing page
func ProductLink(product string) string {
	return DataTest("item-" + Slug(product) + "-title-link")
}

// Logical element names shared by several pages
const (
	Title       = "title"
	CartBadge   = "cartBadge"
	CartLink    = "cartLink"
	MenuButton  = "menuButton"
	Logout      = "logout"
	ErrorBanner = "error"
)

var header = []Entry{
	{Name: Title, Locator: DataTest("title")},
	{Name: CartBadge, Locator: DataTest("shopping-cart-badge")},
	{Name: CartLink, Locator: DataTest("shopping-cart-link")},
	{Name: MenuButton, Locator: "#react-burger-menu-btn"},
	{Name: Logout, Locator: DataTest("logout-sidebar-link")},
}

func withHeader(page string, entries ...Entry) Set {
	return NewSet(page, append(append([]Entry{}, header...), entries...)...)
}

// Page registries
var (
	Login = NewSet("login",
		Entry{Name: "username", Locator: DataTest("username")},
		Entry{Name: "password", Locator: DataTest("password")},
		Entry{Name: "loginButton", Locator: DataTest("login-button")},
		Entry{Name: ErrorBanner, Locator: DataTest("error")},
		Entry{Name: "loginLogo", Locator: ".login_logo"},
	)

	Products = withHeader("products",
		Entry{Name: "inventoryList", Locator: DataTest("inventory-list")},
		Entry{Name: "itemName", Locator: DataTest("inventory-item-name")},
		Entry{Name: "itemPrice", Locator: DataTest("inventory-item-price")},
		Entry{Name: "sort", Locator: DataTest("product-sort-container")},
	)

	ProductDetail = withHeader("product-detail",
		Entry{Name: "name", Locator: DataTest("inventory-item-name")},
		Entry{Name: "price", Locator: DataTest("inventory-item-price")},
		Entry{Name: "description", Locator: DataTest("inventory-item-desc")},
		Entry{Name: "addToCart", Locator: DataTest("add-to-cart")},
		Entry{Name: "remove", Locator: DataTest("remove")},
		Entry{Name: "back", Locator: DataTest("back-to-products")},
	)

	Cart = withHeader("cart",
		Entry{Name: "cartList", Locator: DataTest("cart-list")},
		Entry{Name: "itemName", Locator: DataTest("inventory-item-name")},
		Entry{Name: "checkout", Locator: DataTest("checkout")},
		Entry{Name: "continueShopping", Locator: DataTest("continue-shopping")},
	)

	CheckoutInformation = withHeader("checkout-information",
		Entry{Name: "firstName", Locator: DataTest("firstName")},
		Entry{Name: "lastName", Locator: DataTest("lastName")},
		Entry{Name: "postalCode", Locator: DataTest("postalCode")},
		Entry{Name: "continue", Locator: DataTest("continue")},
		Entry{Name: "cancel", Locator: DataTest("cancel")},
		Entry{Name: ErrorBanner, Locator: DataTest("error")},
	)

	CheckoutOverview = withHeader("checkout-overview",
		Entry{Name: "itemName", Locator: DataTest("inventory-item-name")},
		Entry{Name: "subtotal", Locator: DataTest("subtotal-label")},
		Entry{Name: "tax", Locator: DataTest("tax-label")},
		Entry{Name: "total", Locator: DataTest("total-label")},
		Entry{Name: "finish", Locator: DataTest("finish")},
		Entry{Name: "cancel", Locator: DataTest("cancel")},
	)

	CheckoutComplete = withHeader("checkout-complete",
		Entry{Name: "header", Locator: DataTest("complete-header")},
		Entry{Name: "text", Locator: DataTest("complete-text")},
		Entry{Name: "backHome", Locator: DataTest("back-to-products")},
	)
)

// All returns every page registry
func All() []Set {
	return []Set{Login, Products, ProductDetail, Cart, CheckoutInformation, CheckoutOverview, CheckoutComplete}
}
