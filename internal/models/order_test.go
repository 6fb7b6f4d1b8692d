package models

import (
	"errors"
	"strings"
	"testing"
)

func validCustomer() Customer {
	return Customer{FirstName: "Ada", LastName: "Lovelace", PostalCode: "90210"}
}

func TestNewOrder(t *testing.T) {
	backpack := OrderItem{ProductID: 4, Name: "Sauce Labs Backpack", PriceCents: 2999}
	bikeLight := OrderItem{ProductID: 0, Name: "Sauce Labs Bike Light", PriceCents: 999}

	tests := []struct {
		name      string
		customer  Customer
		items     []OrderItem
		wantErr   error
		wantTotal int64
	}{
		{
			name:      "single item",
			customer:  validCustomer(),
			items:     []OrderItem{backpack},
			wantTotal: 3239,
		},
		{
			name:      "two items",
			customer:  validCustomer(),
			items:     []OrderItem{backpack, bikeLight},
			wantTotal: 4318,
		},
		{
			name:     "empty cart",
			customer: validCustomer(),
			items:    nil,
			wantErr:  ErrEmptyCart,
		},
		{
			name:     "missing first name",
			customer: Customer{LastName: "Lovelace", PostalCode: "90210"},
			items:    []OrderItem{backpack},
			wantErr:  ErrFirstNameRequired,
		},
		{
			name:     "missing last name",
			customer: Customer{FirstName: "Ada", PostalCode: "90210"},
			items:    []OrderItem{backpack},
			wantErr:  ErrLastNameRequired,
		},
		{
			name:     "missing postal code",
			customer: Customer{FirstName: "Ada", LastName: "Lovelace"},
			items:    []OrderItem{backpack},
			wantErr:  ErrPostalCodeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder("standard_user", tt.customer, tt.items)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				if order != nil {
					t.Error("Expected order to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewOrder() unexpected error = %v", err)
			}
			if order.ID == "" {
				t.Error("Order ID should not be empty")
			}
			if !strings.HasPrefix(order.Reference, "SWAG-") {
				t.Errorf("Expected reference to start with SWAG-, got %s", order.Reference)
			}
			if order.Status != OrderStatusPending {
				t.Errorf("Expected status %s, got %s", OrderStatusPending, order.Status)
			}
			if order.TotalCents != tt.wantTotal {
				t.Errorf("Expected total %d, got %d", tt.wantTotal, order.TotalCents)
			}
			if order.SubtotalCents+order.TaxCents != order.TotalCents {
				t.Errorf("Subtotal %d + tax %d != total %d", order.SubtotalCents, order.TaxCents, order.TotalCents)
			}
		})
	}
}

func TestNewOrder_CopiesItems(t *testing.T) {
	// GIVEN
	items := []OrderItem{{ProductID: 2, Name: "Sauce Labs Onesie", PriceCents: 799}}

	// WHEN
	order, err := NewOrder("standard_user", validCustomer(), items)
	if err != nil {
		t.Fatalf("NewOrder() unexpected error = %v", err)
	}
	items[0].PriceCents = 1

	// THEN
	if order.Items[0].PriceCents != 799 {
		t.Errorf("Order items should not alias the caller's slice")
	}
}

func TestOrder_Complete(t *testing.T) {
	tests := []struct {
		name    string
		status  OrderStatus
		wantErr bool
	}{
		{name: "pending order", status: OrderStatusPending, wantErr: false},
		{name: "already complete", status: OrderStatusComplete, wantErr: true},
		{name: "cancelled order", status: OrderStatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: tt.status}
			err := order.Complete()

			if (err != nil) != tt.wantErr {
				t.Fatalf("Complete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
				}
				return
			}
			if !order.IsComplete() {
				t.Error("Order should be complete")
			}
		})
	}
}

func TestOrder_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  OrderStatus
		wantErr bool
	}{
		{name: "pending order", status: OrderStatusPending, wantErr: false},
		{name: "complete order", status: OrderStatusComplete, wantErr: true},
		{name: "already cancelled", status: OrderStatusCancelled, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Status: tt.status}
			err := order.Cancel()

			if (err != nil) != tt.wantErr {
				t.Fatalf("Cancel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && order.Status != OrderStatusCancelled {
				t.Errorf("Expected status %s, got %s", OrderStatusCancelled, order.Status)
			}
		})
	}
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		subtotal int64
		want     int64
	}{
		{subtotal: 2999, want: 240},
		{subtotal: 999, want: 80},
		{subtotal: 0, want: 0},
		{subtotal: 3998, want: 320},
		{subtotal: 10899, want: 872},
	}

	for _, tt := range tests {
		if got := CalculateTax(tt.subtotal, TaxRateBasisPoints); got != tt.want {
			t.Errorf("CalculateTax(%d) = %d, want %d", tt.subtotal, got, tt.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	tests := map[int64]string{
		2999: "$29.99",
		5:    "$0.05",
		3239: "$32.39",
		0:    "$0.00",
		-150: "-$1.50",
	}

	for cents, want := range tests {
		if got := FormatCents(cents); got != want {
			t.Errorf("FormatCents(%d) = %s, want %s", cents, got, want)
		}
	}
}
