package pages

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaglabs/shopcheck/internal/browser/browsertest"
	"github.com/swaglabs/shopcheck/internal/selectors"
)

func TestLoginPage_Login(t *testing.T) {
	// GIVEN the login form
	p, fake := newTestPages(t)
	for _, name := range []string{"username", "password", "loginButton"} {
		fake.Show(selectors.Login.Must(name), "")
	}
	fake.OnClick(selectors.Login.Must("loginButton"), func() error {
		fake.SetURL(testBaseURL + ProductsPath)
		fake.Show(selectors.Products.Must("inventoryList"), "")
		return nil
	})
	ctx := context.Background()

	// WHEN logging in
	require.NoError(t, p.Login.Open(ctx))
	require.NoError(t, p.Login.Login(ctx, "standard_user", "secret_sauce"))

	// THEN the credentials were typed and the listing is shown
	assert.Equal(t, "standard_user", fake.Value(selectors.Login.Must("username")))
	assert.Equal(t, "secret_sauce", fake.Value(selectors.Login.Must("password")))
	require.NoError(t, p.Products.WaitLoaded(ctx))
	loaded, err := p.Products.IsLoaded(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)
	displayed, err := p.Login.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, displayed)
}

func TestLoginPage_ErrorMessage(t *testing.T) {
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + "/")
	fake.Show(selectors.Login.Must("loginButton"), "Login")
	fake.Show(selectors.Login.Must(selectors.ErrorBanner), "Epic sadface: Sorry, this user has been locked out.")
	ctx := context.Background()

	msg, err := p.Login.ErrorMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Epic sadface: Sorry, this user has been locked out.", msg)

	displayed, err := p.Login.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.True(t, displayed)
}

// fakeListing simulates add and remove buttons plus the cart badge
func fakeListing(fake *browsertest.Page, products ...string) {
	badge := selectors.Products.Must(selectors.CartBadge)
	count := 0
	setBadge := func() {
		if count == 0 {
			fake.Remove(badge)
			return
		}
		fake.Show(badge, fmt.Sprint(count))
	}
	for _, name := range products {
		add, remove := selectors.AddToCart(name), selectors.RemoveFromCart(name)
		fake.Show(add, "Add to cart")
		fake.OnClick(add, func() error {
			fake.Remove(add)
			fake.Show(remove, "Remove")
			count++
			setBadge()
			return nil
		})
		fake.OnClick(remove, func() error {
			fake.Remove(remove)
			fake.Show(add, "Add to cart")
			count--
			setBadge()
			return nil
		})
	}
}

func TestProductsPage_CartCount(t *testing.T) {
	p, fake := newTestPages(t)
	products := []string{"Sauce Labs Backpack", "Sauce Labs Bike Light", "Sauce Labs Onesie"}
	fakeListing(fake, products...)
	ctx := context.Background()

	n, err := p.Products.CartCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "no badge means an empty cart")

	for _, name := range products {
		require.NoError(t, p.Products.AddProductToCart(ctx, name))
	}
	n, err = p.Products.CartCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, p.Products.RemoveProductFromCart(ctx, "Sauce Labs Bike Light"))
	n, err = p.Products.CartCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProductsPage_CartCountNotANumber(t *testing.T) {
	p, fake := newTestPages(t)
	fake.Show(selectors.Products.Must(selectors.CartBadge), "many")

	_, err := p.Products.CartCount(context.Background())

	assert.ErrorContains(t, err, `cart badge "many" is not a number`)
}

func TestProductsPage_SortBy(t *testing.T) {
	// GIVEN a listing whose sort control reloads the page
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + ProductsPath)
	fake.Show(selectors.Products.Must("sort"), "")
	fake.Show(selectors.Products.Must("inventoryList"), "")
	fake.ShowAll(selectors.Products.Must("itemPrice"), "$7.99", "$9.99", "$29.99")
	fake.OnSelect(selectors.Products.Must("sort"), func(value string) error {
		fake.SetURL(testBaseURL + ProductsPath + "?sort=" + value)
		fake.ShowAll(selectors.Products.Must("itemPrice"), "$29.99", "$9.99", "$7.99")
		return nil
	})
	ctx := context.Background()

	// WHEN sorting high to low
	require.NoError(t, p.Products.SortBy(ctx, "hilo"))

	// THEN prices come back in that order
	prices, err := p.Products.ProductPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2999, 999, 799}, prices)
	assert.Equal(t, "hilo", fake.Value(selectors.Products.Must("sort")))
}

func TestProductsPage_Logout(t *testing.T) {
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + ProductsPath)
	menu := selectors.Products.Must(selectors.MenuButton)
	logout := selectors.Products.Must(selectors.Logout)
	fake.Show(menu, "Open Menu")
	fake.Set(logout, browsertest.Element{Text: "Logout"})
	fake.OnClick(menu, func() error { fake.Show(logout, "Logout"); return nil })
	fake.OnClick(logout, func() error { fake.SetURL(testBaseURL + "/"); return nil })

	require.NoError(t, p.Products.Logout(context.Background()))

	assert.Equal(t, []string{"click " + menu, "click " + logout}, fake.Calls())
}

func TestProductDetailPage(t *testing.T) {
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + ProductDetailPath + "?id=4")
	fake.Show(selectors.ProductDetail.Must("name"), "Sauce Labs Backpack")
	fake.Show(selectors.ProductDetail.Must("price"), "$29.99")
	fake.Show(selectors.ProductDetail.Must("addToCart"), "Add to cart")
	fake.OnClick(selectors.ProductDetail.Must("addToCart"), func() error {
		fake.Show(selectors.ProductDetail.Must("remove"), "Remove")
		fake.Show(selectors.ProductDetail.Must(selectors.CartBadge), "1")
		return nil
	})
	ctx := context.Background()

	require.NoError(t, p.ProductDetail.WaitLoaded(ctx))
	name, err := p.ProductDetail.Name(ctx)
	require.NoError(t, err)
	price, err := p.ProductDetail.Price(ctx)
	require.NoError(t, err)
	require.NoError(t, p.ProductDetail.AddToCart(ctx))
	count, err := p.ProductDetail.CartCount(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Sauce Labs Backpack", name)
	assert.Equal(t, int64(2999), price)
	assert.Equal(t, 1, count)
}

func TestCartPage_RemoveItem(t *testing.T) {
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + CartPath)
	fake.Show(selectors.Cart.Must("cartList"), "")
	fake.ShowAll(selectors.Cart.Must("itemName"), "Sauce Labs Backpack", "Sauce Labs Onesie")
	remove := selectors.RemoveFromCart("Sauce Labs Backpack")
	fake.Show(remove, "Remove")
	fake.OnClick(remove, func() error {
		fake.Remove(remove)
		fake.ShowAll(selectors.Cart.Must("itemName"), "Sauce Labs Onesie")
		return nil
	})
	ctx := context.Background()

	require.NoError(t, p.Cart.RemoveItem(ctx, "Sauce Labs Backpack"))

	names, err := p.Cart.ItemNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sauce Labs Onesie"}, names)
}

func TestCheckoutInformationPage_Submit(t *testing.T) {
	p, fake := newTestPages(t)
	sel := selectors.CheckoutInformation
	for _, name := range []string{"firstName", "lastName", "postalCode", "continue"} {
		fake.Show(sel.Must(name), "")
	}
	fake.OnClick(sel.Must("continue"), func() error {
		fake.Show(sel.Must(selectors.ErrorBanner), "Error: Last Name is required")
		return nil
	})
	ctx := context.Background()

	require.NoError(t, p.CheckoutInformation.SubmitInformation(ctx, "Ada", "Lovelace", "12345"))
	msg, err := p.CheckoutInformation.ErrorMessage(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Error: Last Name is required", msg)
	assert.Equal(t, "Lovelace", fake.Value(sel.Must("lastName")))
}

func TestCheckoutOverviewPage_Totals(t *testing.T) {
	p, fake := newTestPages(t)
	sel := selectors.CheckoutOverview
	fake.SetURL(testBaseURL + CheckoutOverviewPath)
	fake.Show(sel.Must("subtotal"), "Item total: $29.99")
	fake.Show(sel.Must("tax"), "Tax: $2.40")
	fake.Show(sel.Must("total"), "Total: $32.39")
	ctx := context.Background()

	require.NoError(t, p.CheckoutOverview.WaitLoaded(ctx))
	sub, err := p.CheckoutOverview.Subtotal(ctx)
	require.NoError(t, err)
	tax, err := p.CheckoutOverview.Tax(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2999), sub)
	assert.Equal(t, int64(240), tax)
	assert.NoError(t, p.CheckoutOverview.VerifyOrderTotal(ctx, 3239))

	err = p.CheckoutOverview.VerifyOrderTotal(ctx, 3000)
	var assertion *AssertionError
	require.ErrorAs(t, err, &assertion)
	assert.Equal(t, int64(3000), assertion.Want)
	assert.Equal(t, int64(3239), assertion.Got)
}

func TestCheckoutComplete(t *testing.T) {
	p, fake := newTestPages(t)
	fake.SetURL(testBaseURL + CheckoutOverviewPath)
	fake.Show(selectors.CheckoutOverview.Must("finish"), "Finish")
	fake.OnClick(selectors.CheckoutOverview.Must("finish"), func() error {
		fake.SetURL(testBaseURL + CheckoutCompletePath)
		fake.Show(selectors.CheckoutComplete.Must("header"), "Thank you for your order!")
		return nil
	})
	ctx := context.Background()

	require.NoError(t, p.CheckoutOverview.Finish(ctx))
	require.NoError(t, p.CheckoutComplete.WaitLoaded(ctx))
	header, err := p.CheckoutComplete.Header(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Thank you for your order!", header)
}
