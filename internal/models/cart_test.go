package models

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestCart_AddRemove(t *testing.T) {
	// GIVEN
	var cart Cart

	// WHEN
	if err := cart.Add(4); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}
	if err := cart.Add(0); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}

	// THEN
	if cart.Count() != 2 {
		t.Errorf("Expected 2 items, got %d", cart.Count())
	}
	if err := cart.Add(4); !errors.Is(err, ErrAlreadyInCart) {
		t.Errorf("Expected ErrAlreadyInCart, got %v", err)
	}
	if err := cart.Remove(5); !errors.Is(err, ErrNotInCart) {
		t.Errorf("Expected ErrNotInCart, got %v", err)
	}
	if err := cart.Remove(4); err != nil {
		t.Errorf("Remove() unexpected error = %v", err)
	}
	if got := cart.Items(); len(got) != 1 || got[0] != 0 {
		t.Errorf("Expected [0], got %v", got)
	}
}

func TestCart_CountProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfNDistinct(rapid.IntRange(0, 50), 1, 20, rapid.ID[int]).Draw(t, "ids")

		var cart Cart
		for _, id := range ids {
			if err := cart.Add(id); err != nil {
				t.Fatalf("Add(%d) failed: %v", id, err)
			}
		}
		if cart.Count() != len(ids) {
			t.Fatalf("expected count %d, got %d", len(ids), cart.Count())
		}

		victim := rapid.SampledFrom(ids).Draw(t, "victim")
		if err := cart.Remove(victim); err != nil {
			t.Fatalf("Remove(%d) failed: %v", victim, err)
		}
		if cart.Count() != len(ids)-1 {
			t.Fatalf("expected count %d after removal, got %d", len(ids)-1, cart.Count())
		}
		if cart.Contains(victim) {
			t.Fatalf("cart still contains %d", victim)
		}
	})
}

func TestCalculateTax_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		subtotal := rapid.Int64Range(0, 10_000_000).Draw(t, "subtotal")
		tax := CalculateTax(subtotal, TaxRateBasisPoints)

		// The rounded tax is within half a cent of the exact value.
		exact := subtotal * TaxRateBasisPoints
		if diff := tax*10000 - exact; diff > 5000 || diff < -5000 {
			t.Fatalf("tax %d too far from exact %d/10000", tax, exact)
		}
	})
}
