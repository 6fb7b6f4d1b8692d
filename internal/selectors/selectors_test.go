package selectors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sauce Labs Backpack", "sauce-labs-backpack"},
		{"Sauce Labs Bolt T-Shirt", "sauce-labs-bolt-t-shirt"},
		{"Test.allTheThings() T-Shirt (Red)", "test-allthethings-t-shirt-red"},
		{"  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.name))
		})
	}
}

func TestProductButtons(t *testing.T) {
	assert.Equal(t, `[data-test="add-to-cart-sauce-labs-onesie"]`, AddToCart("Sauce Labs Onesie"))
	assert.Equal(t, `[data-test="remove-sauce-labs-onesie"]`, RemoveFromCart("Sauce Labs Onesie"))
}

func TestSet_Lookup(t *testing.T) {
	loc, ok := Login.Lookup("username")
	require.True(t, ok)
	assert.Equal(t, `[data-test="username"]`, loc)

	_, ok = Login.Lookup("nope")
	assert.False(t, ok)

	assert.PanicsWithValue(t, `selectors: no entry "nope" on page "login"`, func() { Login.Must("nope") })
}

func TestNewSet_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSet("broken", Entry{Name: "a", Locator: "#a"}, Entry{Name: "a", Locator: "#b"})
	})
}

func TestAll_RegistriesAreComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, set := range All() {
		require.False(t, seen[set.Page], "page %s registered twice", set.Page)
		seen[set.Page] = true

		entries := set.Entries()
		require.NotEmpty(t, entries, set.Page)
		for _, e := range entries {
			assert.NotEmpty(t, strings.TrimSpace(e.Locator), "%s.%s", set.Page, e.Name)
		}
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, Products.Must(CartBadge), Cart.Must(CartBadge), "header entries are shared")
}

func TestProductLink(t *testing.T) {
	assert.Equal(t, `[data-test="item-sauce-labs-fleece-jacket-title-link"]`, ProductLink("Sauce Labs Fleece Jacket"))
}
