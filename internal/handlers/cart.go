package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/swaglabs/shopcheck/internal/models"
	"github.com/swaglabs/shopcheck/internal/services"
	"go.uber.org/zap"
)

// cartProducts resolves the product IDs of a cart, skipping any that left
// the catalog.
func cartProducts(catalog *models.Catalog, ids []int) []models.Product {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := catalog.Get(id); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// CartHandler shows the cart
type CartHandler struct {
	template *template.Template
	catalog  *models.Catalog
	logger   *zap.Logger
}

// CartData represents the data passed to the cart template
type CartData struct {
	Items []models.Product
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog *models.Catalog, logger *zap.Logger) (*CartHandler, error) {
	tmpl, err := parsePage("cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		catalog:  catalog,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /cart.html
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sess := sessionFrom(r)
	render(w, h.logger, h.template, http.StatusOK, pageData{
		Title:     "Your Cart",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page:      CartData{Items: cartProducts(h.catalog, sess.CartItems)},
	})
}

// CartAction is what a CartActionHandler does to the cart
type CartAction int

// Cart actions
const (
	CartAdd CartAction = iota
	CartRemove
)

// CartActionHandler adds or removes one product and redirects back
type CartActionHandler struct {
	action   CartAction
	sessions services.SessionService
	logger   *zap.Logger
}

// NewCartActionHandler creates a handler for POST /cart/add or /cart/remove
func NewCartActionHandler(action CartAction, sessions services.SessionService, logger *zap.Logger) *CartActionHandler {
	return &CartActionHandler{
		action:   action,
		sessions: sessions,
		logger:   logger,
	}
}

// returnPath accepts only local paths so the form cannot redirect away
func returnPath(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/inventory.html"
	}
	return target
}

// ServeHTTP handles the add or remove form
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.PostFormValue("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	if h.action == CartAdd {
		err = h.sessions.AddToCart(sess.ID, id)
	} else {
		err = h.sessions.RemoveFromCart(sess.ID, id)
	}
	switch {
	case errors.Is(err, models.ErrUnknownProduct):
		http.Error(w, "Unknown product", http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrAlreadyInCart), errors.Is(err, models.ErrNotInCart):
		// a repeated click leaves the cart as it is
		h.logger.Debug("Cart unchanged", zap.Int("product", id), zap.Error(err))
	case err != nil:
		h.logger.Error("Error updating cart", zap.Error(err))
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, returnPath(r.PostFormValue("return")), http.StatusSeeOther)
}
