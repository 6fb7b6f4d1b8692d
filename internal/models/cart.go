package models

import "errors"

// Cart errors
var (
	ErrAlreadyInCart = errors.New("product is already in the cart")
	ErrNotInCart     = errors.New("product is not in the cart")
	ErrEmptyCart     = errors.New("cart is empty")
)

// Cart holds distinct product IDs in the order they were added.
// A Cart is not safe for concurrent use; the cart service guards it.
type Cart struct {
	items []int
}

// Add puts a product in the cart
func (c *Cart) Add(productID int) error {
	if c.Contains(productID) {
		return ErrAlreadyInCart
	}
	c.items = append(c.items, productID)
	return nil
}

// Remove takes a product out of the cart
func (c *Cart) Remove(productID int) error {
	for i, id := range c.items {
		if id == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Contains reports whether the product is in the cart
func (c *Cart) Contains(productID int) bool {
	for _, id := range c.items {
		if id == productID {
			return true
		}
	}
	return false
}

// Count returns the number of distinct products in the cart
func (c *Cart) Count() int {
	return len(c.items)
}

// Items returns a copy of the product IDs in the cart
func (c *Cart) Items() []int {
	out := make([]int, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}
