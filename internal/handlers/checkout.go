package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/swaglabs/shopcheck/internal/models"
	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// CheckoutInformationHandler handles the customer information step
type CheckoutInformationHandler struct {
	template *template.Template
	sessions services.SessionService
	logger   *zap.Logger
}

// NewCheckoutInformationHandler creates a new checkout information handler
func NewCheckoutInformationHandler(sessions services.SessionService, logger *zap.Logger) (*CheckoutInformationHandler, error) {
	tmpl, err := parsePage("checkout_information.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutInformationHandler{
		template: tmpl,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// checkoutMessage maps a validation error to the banner text
func checkoutMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrFirstNameRequired):
		return "Error: First Name is required"
	case errors.Is(err, models.ErrLastNameRequired):
		return "Error: Last Name is required"
	case errors.Is(err, models.ErrPostalCodeRequired):
		return "Error: Postal Code is required"
	default:
		return "Error: " + err.Error()
	}
}

// ServeHTTP handles GET and POST /checkout-step-one.html
func (h *CheckoutInformationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	data := pageData{
		Title:     "Checkout: Your Information",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page:      models.Customer{},
	}

	switch r.Method {
	case http.MethodGet:
		render(w, h.logger, h.template, http.StatusOK, data)
		return
	case http.MethodPost:
	default:
		methodNotAllowed(w)
		return
	}

	customer := models.Customer{
		FirstName:  r.PostFormValue("first-name"),
		LastName:   r.PostFormValue("last-name"),
		PostalCode: r.PostFormValue("postal-code"),
	}
	submitted := customer
	if sess.Quirk == models.QuirkProblem {
		// the problem account loses whatever was typed as last name
		customer.LastName = ""
	}

	if err := h.sessions.SetCustomer(sess.ID, customer); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.logger.Info("Checkout information rejected", zap.String("username", sess.Username), zap.Error(err))
		data.Error = checkoutMessage(err)
		data.Page = submitted
		render(w, h.logger, h.template, http.StatusOK, data)
		return
	}

	http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
}

// CheckoutOverviewHandler shows the order summary before it is placed
type CheckoutOverviewHandler struct {
	template *template.Template
	catalog  *models.Catalog
	logger   *zap.Logger
}

// OverviewData represents the data passed to the overview template
type OverviewData struct {
	Items         []models.Product
	Customer      models.Customer
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// NewCheckoutOverviewHandler creates a new checkout overview handler
func NewCheckoutOverviewHandler(catalog *models.Catalog, logger *zap.Logger) (*CheckoutOverviewHandler, error) {
	tmpl, err := parsePage("checkout_overview.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutOverviewHandler{
		template: tmpl,
		catalog:  catalog,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /checkout-step-two.html
func (h *CheckoutOverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sess := sessionFrom(r)
	if sess.Customer == nil {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	products := cartProducts(h.catalog, sess.CartItems)
	var subtotal int64
	for _, p := range products {
		subtotal += p.PriceCents
	}
	tax := models.CalculateTax(subtotal, models.TaxRateBasisPoints)

	render(w, h.logger, h.template, http.StatusOK, pageData{
		Title:     "Checkout: Overview",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page: OverviewData{
			Items:         products,
			Customer:      *sess.Customer,
			SubtotalCents: subtotal,
			TaxCents:      tax,
			TotalCents:    subtotal + tax,
		},
	})
}

// FinishHandler places the order
type FinishHandler struct {
	catalog  *models.Catalog
	sessions services.SessionService
	orders   services.OrderService
	logger   *zap.Logger
}

// NewFinishHandler creates a new finish handler
func NewFinishHandler(catalog *models.Catalog, sessions services.SessionService, orders services.OrderService, logger *zap.Logger) *FinishHandler {
	return &FinishHandler{
		catalog:  catalog,
		sessions: sessions,
		orders:   orders,
		logger:   logger,
	}
}

// ServeHTTP handles POST /checkout/finish
func (h *FinishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	sess := sessionFrom(r)
	if sess.Customer == nil {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	order, err := h.orders.PlaceOrder(sess.Username, *sess.Customer, cartProducts(h.catalog, sess.CartItems))
	if errors.Is(err, models.ErrEmptyCart) {
		http.Redirect(w, r, "/cart.html", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger.Error("Error placing order", zap.String("username", sess.Username), zap.Error(err))
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.CompleteCheckout(sess.ID, order.Reference); err != nil {
		h.logger.Error("Error completing checkout", zap.Error(err))
		http.Error(w, "Failed to complete checkout", http.StatusInternalServerError)
		return
	}
	h.logger.Info("Order placed",
		zap.String("reference", order.Reference),
		zap.String("username", sess.Username),
		zap.Int64("total_cents", order.TotalCents))

	http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
}
