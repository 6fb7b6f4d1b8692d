package pages

import "github.com/swaglabs/shopcheck/internal/browser"

// Pages bundles one instance of every page object over a single browser
// page. A bundle belongs to one test.
type Pages struct {
	Base                *Base
	Login               *LoginPage
	Products            *ProductsPage
	ProductDetail       *ProductDetailPage
	Cart                *CartPage
	CheckoutInformation *CheckoutInformationPage
	CheckoutOverview    *CheckoutOverviewPage
	CheckoutComplete    *CheckoutCompletePage
}

// New builds every page object over page
func New(page browser.Page, opts Options) *Pages {
	b := NewBase(page, opts)
	return &Pages{
		Base:                b,
		Login:               NewLoginPage(b),
		Products:            NewProductsPage(b),
		ProductDetail:       NewProductDetailPage(b),
		Cart:                NewCartPage(b),
		CheckoutInformation: NewCheckoutInformationPage(b),
		CheckoutOverview:    NewCheckoutOverviewPage(b),
		CheckoutComplete:    NewCheckoutCompletePage(b),
	}
}
