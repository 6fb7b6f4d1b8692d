// Package scenario defines user journeys and the handle they run with.
package scenario

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/fixture"
	"github.com/swaglabs/shopcheck/internal/pages"
)

// Scenario is one journey. File groups related scenarios, for example all
// login journeys, and is what --file selects on.
type Scenario struct {
	ID   string
	Name string
	File string
	Tags []string
	Run  func(t *T) error
}

// FullName is the ID followed by the name
func (s Scenario) FullName() string {
	return s.ID + " " + s.Name
}

// HasTag reports whether the scenario carries tag
func (s Scenario) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Hooks lets the runner observe steps
type Hooks struct {
	StepStart func(desc string)
	StepEnd   func(desc string, d time.Duration, err error)
}

// T is passed to a running scenario. Its methods must be called from the
// scenario's goroutine only.
type T struct {
	// Pages drive the first session of the test.
	Pages *pages.Pages
	// Data is the shared read-only dataset.
	Data *dataset.Store

	ctx     context.Context
	fixture *fixture.Fixture
	hooks   Hooks
	faker   *gofakeit.Faker
}

// NewT creates the handle for one scenario run
func NewT(ctx context.Context, f *fixture.Fixture, data *dataset.Store, hooks Hooks) *T {
	return &T{
		Pages:   f.Pages,
		Data:    data,
		ctx:     ctx,
		fixture: f,
		hooks:   hooks,
		faker:   gofakeit.New(0),
	}
}

// Context carries the test's deadline; every page call should use it
func (t *T) Context() context.Context {
	return t.ctx
}

// Step runs fn as a named step. Its error is returned unchanged so the
// scenario can stop at the first failure.
func (t *T) Step(desc string, fn func() error) error {
	if t.hooks.StepStart != nil {
		t.hooks.StepStart(desc)
	}
	start := time.Now()
	err := fn()
	if t.hooks.StepEnd != nil {
		t.hooks.StepEnd(desc, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", desc, err)
	}
	return nil
}

// NewSession opens a second, isolated browser session, as used when
// another user continues a journey.
func (t *T) NewSession() (*pages.Pages, error) {
	return t.fixture.Open(t.ctx)
}

// Customer returns checkout information: the dataset's fixed customer,
// with any empty field generated.
func (t *T) Customer() dataset.Customer {
	c := t.Data.Checkout().Customer
	if c.FirstName == "" {
		c.FirstName = t.faker.FirstName()
	}
	if c.LastName == "" {
		c.LastName = t.faker.LastName()
	}
	if c.PostalCode == "" {
		c.PostalCode = t.faker.Zip()
	}
	return c
}

// Equal fails with an *pages.AssertionError when got differs from want
func Equal(what string, want, got any) error {
	if !reflect.DeepEqual(want, got) {
		return &pages.AssertionError{What: what, Want: want, Got: got}
	}
	return nil
}

// True fails with an *pages.AssertionError when cond does not hold
func True(what string, cond bool) error {
	if !cond {
		return &pages.AssertionError{What: what, Want: true, Got: false}
	}
	return nil
}
