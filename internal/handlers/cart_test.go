package handlers

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/swaglabs/shopcheck/internal/models"
	"go.uber.org/zap"
)

func TestCartActionHandler(t *testing.T) {
	tests := []struct {
		name           string
		action         CartAction
		start          []int
		form           url.Values
		expectedStatus int
		expectedCart   []int
		location       string
	}{
		{
			name:           "add returns to the listing",
			action:         CartAdd,
			form:           url.Values{"id": {"4"}, "return": {"/inventory.html?sort=hilo"}},
			expectedStatus: http.StatusSeeOther,
			expectedCart:   []int{4},
			location:       "/inventory.html?sort=hilo",
		},
		{
			name:           "add twice keeps one",
			action:         CartAdd,
			start:          []int{4},
			form:           url.Values{"id": {"4"}, "return": {"/cart.html"}},
			expectedStatus: http.StatusSeeOther,
			expectedCart:   []int{4},
			location:       "/cart.html",
		},
		{
			name:           "remove",
			action:         CartRemove,
			start:          []int{4, 0},
			form:           url.Values{"id": {"4"}, "return": {"/cart.html"}},
			expectedStatus: http.StatusSeeOther,
			expectedCart:   []int{0},
			location:       "/cart.html",
		},
		{
			name:           "external return is ignored",
			action:         CartAdd,
			form:           url.Values{"id": {"0"}, "return": {"//evil.example"}},
			expectedStatus: http.StatusSeeOther,
			expectedCart:   []int{0},
			location:       "/inventory.html",
		},
		{
			name:           "unknown product",
			action:         CartAdd,
			form:           url.Values{"id": {"42"}},
			expectedStatus: http.StatusBadRequest,
			expectedCart:   []int{},
		},
		{
			name:           "malformed id",
			action:         CartAdd,
			form:           url.Values{"id": {"x"}},
			expectedStatus: http.StatusBadRequest,
			expectedCart:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			sessions := newTestSessions()
			sess := signIn(t, sessions, "standard_user")
			for _, id := range tt.start {
				if err := sessions.AddToCart(sess.ID, id); err != nil {
					t.Fatalf("Failed to seed cart: %v", err)
				}
			}
			handler := NewCartActionHandler(tt.action, sessions, zap.NewNop())

			// WHEN
			w := serve(sessions, handler, newRequest(http.MethodPost, "/cart/add", sess.ID, tt.form))

			// THEN
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.location != "" {
				assertRedirect(t, w, tt.location)
			}
			got, err := sessions.Get(sess.ID)
			if err != nil {
				t.Fatalf("Failed to get session: %v", err)
			}
			if !slices.Equal(got.CartItems, tt.expectedCart) {
				t.Errorf("expected cart %v, got %v", tt.expectedCart, got.CartItems)
			}
		})
	}
}

func TestCartHandler_ListsItemsInOrder(t *testing.T) {
	// GIVEN
	sessions := newTestSessions()
	sess := signIn(t, sessions, "standard_user")
	for _, id := range []int{0, 4} {
		if err := sessions.AddToCart(sess.ID, id); err != nil {
			t.Fatalf("Failed to add to cart: %v", err)
		}
	}
	handler, err := NewCartHandler(models.DefaultCatalog(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	// WHEN
	w := serve(sessions, handler, newRequest(http.MethodGet, "/cart.html", sess.ID, nil))

	// THEN
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	assertContains(t, body,
		`data-test="title">Your Cart<`,
		`data-test="remove-sauce-labs-bike-light"`,
		`data-test="remove-sauce-labs-backpack"`,
		`data-test="checkout"`,
		`data-test="shopping-cart-badge">2<`)
	if i, j := strings.Index(body, "Sauce Labs Bike Light"), strings.Index(body, "Sauce Labs Backpack"); i > j {
		t.Error("expected items in the order they were added")
	}
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	// GIVEN
	sessions := newTestSessions()
	first := signIn(t, sessions, "standard_user")
	second := signIn(t, sessions, "performance_glitch_user")
	if err := sessions.AddToCart(first.ID, 4); err != nil {
		t.Fatalf("Failed to add to cart: %v", err)
	}
	handler, err := NewCartHandler(models.DefaultCatalog(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	// WHEN
	w := serve(sessions, handler, newRequest(http.MethodGet, "/cart.html", second.ID, nil))

	// THEN
	body := w.Body.String()
	if strings.Contains(body, "Sauce Labs Backpack") {
		t.Error("expected the second session to see an empty cart")
	}
	if strings.Contains(body, `data-test="shopping-cart-badge"`) {
		t.Error("expected no cart badge for an empty cart")
	}
}
