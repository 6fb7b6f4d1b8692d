package handlers

import (
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/swaglabs/shopcheck/internal/models"
	"go.uber.org/zap"
)

// Item is a product as the listing and detail pages show it
type Item struct {
	models.Product
	InCart bool
}

// SortOption is one entry of the sort <select>
type SortOption struct {
	Value    models.SortOrder
	Label    string
	Selected bool
}

var sortLabels = []SortOption{
	{Value: models.SortNameAsc, Label: "Name (A to Z)"},
	{Value: models.SortNameDesc, Label: "Name (Z to A)"},
	{Value: models.SortPriceAsc, Label: "Price (low to high)"},
	{Value: models.SortPriceDesc, Label: "Price (high to low)"},
}

func items(products []models.Product, cart []int) []Item {
	out := make([]Item, len(products))
	for i, p := range products {
		out[i] = Item{Product: p, InCart: slices.Contains(cart, p.ID)}
	}
	return out
}

// InventoryHandler handles the product listing
type InventoryHandler struct {
	template *template.Template
	catalog  *models.Catalog
	logger   *zap.Logger
}

// InventoryData represents the data passed to the inventory template
type InventoryData struct {
	Items       []Item
	SortOptions []SortOption
	// Return brings add and remove buttons back to this listing.
	Return string
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(catalog *models.Catalog, logger *zap.Logger) (*InventoryHandler, error) {
	tmpl, err := parsePage("inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template: tmpl,
		catalog:  catalog,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /inventory.html?sort=
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	order, err := models.ParseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	options := slices.Clone(sortLabels)
	for i := range options {
		options[i].Selected = options[i].Value == order
	}

	render(w, h.logger, h.template, http.StatusOK, pageData{
		Title:     "Products",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page: InventoryData{
			Items:       items(h.catalog.Sorted(order), sess.CartItems),
			SortOptions: options,
			Return:      r.URL.RequestURI(),
		},
	})
}

// ProductHandler handles the product detail page
type ProductHandler struct {
	template *template.Template
	catalog  *models.Catalog
	notFound http.Handler
	logger   *zap.Logger
}

// ProductData represents the data passed to the product template
type ProductData struct {
	Item   Item
	Return string
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog *models.Catalog, notFound http.Handler, logger *zap.Logger) (*ProductHandler, error) {
	tmpl, err := parsePage("product.html")
	if err != nil {
		return nil, err
	}

	return &ProductHandler{
		template: tmpl,
		catalog:  catalog,
		notFound: notFound,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /inventory-item.html?id=
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		h.notFound.ServeHTTP(w, r)
		return
	}
	product, err := h.catalog.Get(id)
	if err != nil {
		h.notFound.ServeHTTP(w, r)
		return
	}

	sess := sessionFrom(r)
	render(w, h.logger, h.template, http.StatusOK, pageData{
		Title:     "Products",
		LoggedIn:  true,
		CartCount: len(sess.CartItems),
		Page: ProductData{
			Item:   items([]models.Product{product}, sess.CartItems)[0],
			Return: r.URL.RequestURI(),
		},
	})
}
