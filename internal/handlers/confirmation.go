package handlers

import (
	"html/template"
	"net/http"

	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// ConfirmationHandler shows the order confirmation
type ConfirmationHandler struct {
	template *template.Template
	orders   services.OrderService
	logger   *zap.Logger
}

// ConfirmationData represents the data for the confirmation template
type ConfirmationData struct {
	Reference  string
	TotalCents int64
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(orders services.OrderService, logger *zap.Logger) (*ConfirmationHandler, error) {
	tmpl, err := parsePage("checkout_complete.html")
	if err != nil {
		return nil, err
	}

	return &ConfirmationHandler{
		template: tmpl,
		orders:   orders,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /checkout-complete.html
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sess := sessionFrom(r)
	if sess.LastOrder == "" {
		http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
		return
	}

	order, err := h.orders.GetOrderByReference(sess.LastOrder)
	if err != nil {
		h.logger.Error("Error loading order", zap.String("reference", sess.LastOrder), zap.Error(err))
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	render(w, h.logger, h.template, http.StatusOK, pageData{
		Title:     "Checkout: Complete!",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page:      ConfirmationData{Reference: order.Reference, TotalCents: order.TotalCents},
	})
}
