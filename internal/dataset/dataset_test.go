package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	locked, err := s.User("locked_out")
	require.NoError(t, err)
	assert.Equal(t, "locked_out", locked.Key)
	assert.Equal(t, "locked_out_user", locked.Username)
	assert.Equal(t, OutcomeLockedOut, locked.Outcome)
	assert.Equal(t, "Epic sadface: Sorry, this user has been locked out.", locked.Message)

	success := s.UsersWithOutcome(OutcomeSuccess)
	names := make([]string, len(success))
	for i, u := range success {
		names[i] = u.Username
	}
	assert.Equal(t, []string{"performance_glitch_user", "problem_user", "standard_user"}, names)

	backpack, err := s.Product("Sauce Labs Backpack")
	require.NoError(t, err)
	assert.Equal(t, int64(2999), backpack.PriceCents)
	assert.Len(t, s.Products(), 6)
	assert.Len(t, s.SortOptions(), 4)

	checkout := s.Checkout()
	assert.Equal(t, int64(240), checkout.Tax(2999))
	assert.Equal(t, int64(3239), checkout.Total(2999))
	assert.Equal(t, "Thank you for your order!", checkout.CompleteHeader)

	cart := s.Cart()
	assert.Equal(t, len(cart.Add), cart.ExpectedCount)
	assert.Equal(t, cart.ExpectedCount-1, cart.ExpectedAfterRemove)
}

func TestStore_NotFound(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	_, err = s.User("admin")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Product("Sauce Labs Umbrella")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	products := s.Products()
	products[0].Name = "changed"
	cart := s.Cart()
	cart.Add[0] = "changed"

	assert.NotEqual(t, "changed", s.Products()[0].Name)
	assert.NotEqual(t, "changed", s.Cart().Add[0])
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, defaultData, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Users(), 7)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read dataset")
}

func TestParse_Invalid(t *testing.T) {
	base := string(defaultData)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown field",
			data:    base + "\nextra: true\n",
			wantErr: "failed to decode dataset",
		},
		{
			name:    "bad outcome",
			data:    strings.Replace(base, "outcome: locked-out", "outcome: banned", 1),
			wantErr: "Outcome",
		},
		{
			name:    "locked out without message",
			data:    strings.Replace(base, `    message: "Epic sadface: Sorry, this user has been locked out."`+"\n", "", 1),
			wantErr: "Message",
		},
		{
			name:    "unknown checkout product",
			data:    strings.Replace(base, "  product: Sauce Labs Backpack", "  product: Sauce Labs Umbrella", 1),
			wantErr: `product "Sauce Labs Umbrella" is not in the catalog`,
		},
		{
			name:    "count disagrees",
			data:    strings.Replace(base, "expected_count: 3", "expected_count: 4", 1),
			wantErr: "cart expects 4 items but adds 3",
		},
		{
			name:    "removes a product it never adds",
			data:    strings.Replace(base, "remove: Sauce Labs Bike Light", "remove: Sauce Labs Fleece Jacket", 1),
			wantErr: `cart removes "Sauce Labs Fleece Jacket" which it never adds`,
		},
		{
			name:    "remove does not decrement by one",
			data:    strings.Replace(base, "expected_after_remove: 2", "expected_after_remove: 3", 1),
			wantErr: "removing one of 3 items must leave 2, not 3",
		},
		{
			name:    "free product",
			data:    strings.Replace(base, "price_cents: 799", "price_cents: 0", 1),
			wantErr: "PriceCents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
