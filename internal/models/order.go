package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusComplete  OrderStatus = "complete"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TaxRateBasisPoints is the sales tax applied at checkout (800 = 8%)
const TaxRateBasisPoints int64 = 800

// Customer holds the checkout information step
type Customer struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// OrderItem is one product line of an order
type OrderItem struct {
	ProductID  int
	Name       string
	PriceCents int64
}

// Order represents a placed order with business logic
type Order struct {
	ID            string
	Reference     string
	Username      string
	Customer      Customer
	Items         []OrderItem
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain errors
var (
	ErrFirstNameRequired       = errors.New("first name is required")
	ErrLastNameRequired        = errors.New("last name is required")
	ErrPostalCodeRequired      = errors.New("postal code is required")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// Validate checks that every checkout field is present
func (c Customer) Validate() error {
	if c.FirstName == "" {
		return ErrFirstNameRequired
	}
	if c.LastName == "" {
		return ErrLastNameRequired
	}
	if c.PostalCode == "" {
		return ErrPostalCodeRequired
	}
	return nil
}

// CalculateTax returns the tax on a subtotal, rounded half up to the cent
func CalculateTax(subtotalCents, basisPoints int64) int64 {
	return (subtotalCents*basisPoints + 5000) / 10000
}

// NewOrder creates a pending order with totals computed from the items
func NewOrder(username string, customer Customer, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.PriceCents
	}
	tax := CalculateTax(subtotal, TaxRateBasisPoints)

	lines := make([]OrderItem, len(items))
	copy(lines, items)

	id := uuid.New()
	now := time.Now()

	return &Order{
		ID:            id.String(),
		Reference:     fmt.Sprintf("SWAG-%s", id.String()[:8]),
		Username:      username,
		Customer:      customer,
		Items:         lines,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Complete marks the order as placed
func (o *Order) Complete() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	o.Status = OrderStatusComplete
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusComplete {
		return fmt.Errorf("%w: cannot cancel a complete order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsComplete returns true if the order has been placed
func (o *Order) IsComplete() bool {
	return o.Status == OrderStatusComplete
}
