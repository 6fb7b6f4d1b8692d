package models

import (
	"errors"
	"testing"
)

func TestCatalog_Sorted(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		order     SortOrder
		wantFirst string
		wantLast  string
	}{
		{order: SortNameAsc, wantFirst: "Sauce Labs Backpack", wantLast: "Test.allTheThings() T-Shirt (Red)"},
		{order: SortNameDesc, wantFirst: "Test.allTheThings() T-Shirt (Red)", wantLast: "Sauce Labs Backpack"},
		{order: SortPriceAsc, wantFirst: "Sauce Labs Onesie", wantLast: "Sauce Labs Fleece Jacket"},
		{order: SortPriceDesc, wantFirst: "Sauce Labs Fleece Jacket", wantLast: "Sauce Labs Onesie"},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			products := catalog.Sorted(tt.order)
			if len(products) != 6 {
				t.Fatalf("Expected 6 products, got %d", len(products))
			}
			if products[0].Name != tt.wantFirst {
				t.Errorf("Expected first %q, got %q", tt.wantFirst, products[0].Name)
			}
			if products[len(products)-1].Name != tt.wantLast {
				t.Errorf("Expected last %q, got %q", tt.wantLast, products[len(products)-1].Name)
			}
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog := DefaultCatalog()

	p, err := catalog.Get(4)
	if err != nil {
		t.Fatalf("Get(4) unexpected error = %v", err)
	}
	if p.FormattedPrice() != "$29.99" {
		t.Errorf("Expected $29.99, got %s", p.FormattedPrice())
	}

	if _, err := catalog.Get(42); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Expected ErrUnknownProduct, got %v", err)
	}
}

func TestParseSortOrder(t *testing.T) {
	if got, err := ParseSortOrder(""); err != nil || got != SortNameAsc {
		t.Errorf("ParseSortOrder(\"\") = %v, %v", got, err)
	}
	if got, err := ParseSortOrder("hilo"); err != nil || got != SortPriceDesc {
		t.Errorf("ParseSortOrder(hilo) = %v, %v", got, err)
	}
	if _, err := ParseSortOrder("random"); !errors.Is(err, ErrUnknownSortOrder) {
		t.Errorf("Expected ErrUnknownSortOrder, got %v", err)
	}
}

func TestAccount_Authenticate(t *testing.T) {
	tests := []struct {
		name     string
		account  Account
		password string
		wantErr  error
	}{
		{name: "valid", account: Account{Username: "u", Password: "p"}, password: "p"},
		{name: "wrong password", account: Account{Username: "u", Password: "p"}, password: "x", wantErr: ErrInvalidCredentials},
		{name: "locked out", account: Account{Username: "u", Password: "p", LockedOut: true}, password: "p", wantErr: ErrLockedOut},
		{name: "locked out wrong password", account: Account{Username: "u", Password: "p", LockedOut: true}, password: "x", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.account.Authenticate(tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
