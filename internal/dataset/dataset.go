// Package dataset loads the static test data: accounts with their expected
// outcomes, the product catalog, sort options and checkout expectations.
// A Store is immutable once loaded and safe to share between workers.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed shop.yaml
var defaultData []byte

// Outcome is what a login attempt is expected to produce
type Outcome string

// Login outcomes
const (
	OutcomeSuccess         Outcome = "success"
	OutcomeLockedOut       Outcome = "locked-out"
	OutcomeValidationError Outcome = "validation-error"
)

// ErrNotFound is returned for unknown users and products
var ErrNotFound = errors.New("not found in dataset")

// User is a credential with its expected login outcome
type User struct {
	Key           string  `yaml:"-"`
	Username      string  `yaml:"username" validate:"required_unless=Outcome validation-error"`
	Password      string  `yaml:"password"`
	Outcome       Outcome `yaml:"outcome" validate:"oneof=success locked-out validation-error"`
	Message       string  `yaml:"message" validate:"required_unless=Outcome success"`
	CheckoutError string  `yaml:"checkout_error"`
}

// Product is a catalog entry as the listing should show it
type Product struct {
	ID         int    `yaml:"id" validate:"min=0"`
	Name       string `yaml:"name" validate:"required"`
	PriceCents int64  `yaml:"price_cents" validate:"gt=0"`
}

// SortOption maps a logical sort to the value of the sort control
type SortOption struct {
	Key        string `yaml:"key" validate:"required"`
	Value      string `yaml:"value" validate:"required"`
	Field      string `yaml:"field" validate:"oneof=name price"`
	Descending bool   `yaml:"descending"`
}

// Checkout holds the expectations of the purchase journey
type Checkout struct {
	TaxRateBasisPoints int64    `yaml:"tax_rate_bps" validate:"min=0,max=10000"`
	CompleteHeader     string   `yaml:"complete_header" validate:"required"`
	Product            string   `yaml:"product" validate:"required"`
	Customer           Customer `yaml:"customer"`
}

// Tax returns the tax on a subtotal, rounded half up to the cent
func (c Checkout) Tax(subtotalCents int64) int64 {
	return (subtotalCents*c.TaxRateBasisPoints + 5000) / 10000
}

// Total returns subtotal plus tax
func (c Checkout) Total(subtotalCents int64) int64 {
	return subtotalCents + c.Tax(subtotalCents)
}

// Customer is fixed checkout information. Empty fields are generated.
type Customer struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	PostalCode string `yaml:"postal_code"`
}

// Cart holds the expected badge counts of the cart journey
type Cart struct {
	Add                 []string `yaml:"add" validate:"required,min=1,unique"`
	ExpectedCount       int      `yaml:"expected_count" validate:"min=1"`
	Remove              string   `yaml:"remove" validate:"required"`
	ExpectedAfterRemove int      `yaml:"expected_after_remove" validate:"min=0"`
}

type document struct {
	Users       map[string]User `yaml:"users" validate:"required,min=1,dive"`
	Products    []Product       `yaml:"products" validate:"required,min=1,dive"`
	SortOptions []SortOption    `yaml:"sort_options" validate:"required,min=1,dive"`
	Checkout    Checkout        `yaml:"checkout"`
	Cart        Cart            `yaml:"cart"`
}

// Store is the loaded, validated dataset
type Store struct {
	doc       document
	userKeys  []string
	byProduct map[string]Product
}

var validate = validator.New()

// Default returns the dataset compiled into the binary
func Default() (*Store, error) {
	return Parse(defaultData)
}

// Load reads a dataset file; an empty path selects the built-in one
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	s := &Store{doc: doc, byProduct: make(map[string]Product, len(doc.Products))}
	for key, u := range doc.Users {
		u.Key = key
		s.doc.Users[key] = u
		s.userKeys = append(s.userKeys, key)
	}
	sort.Strings(s.userKeys)

	for _, p := range doc.Products {
		if _, dup := s.byProduct[p.Name]; dup {
			return nil, fmt.Errorf("invalid dataset: duplicate product %q", p.Name)
		}
		s.byProduct[p.Name] = p
	}
	for _, name := range append([]string{doc.Checkout.Product, doc.Cart.Remove}, doc.Cart.Add...) {
		if _, ok := s.byProduct[name]; !ok {
			return nil, fmt.Errorf("invalid dataset: product %q is not in the catalog", name)
		}
	}
	if doc.Cart.ExpectedCount != len(doc.Cart.Add) {
		return nil, fmt.Errorf("invalid dataset: cart expects %d items but adds %d", doc.Cart.ExpectedCount, len(doc.Cart.Add))
	}
	if !slices.Contains(doc.Cart.Add, doc.Cart.Remove) {
		return nil, fmt.Errorf("invalid dataset: cart removes %q which it never adds", doc.Cart.Remove)
	}
	if doc.Cart.ExpectedAfterRemove != doc.Cart.ExpectedCount-1 {
		return nil, fmt.Errorf("invalid dataset: removing one of %d items must leave %d, not %d",
			doc.Cart.ExpectedCount, doc.Cart.ExpectedCount-1, doc.Cart.ExpectedAfterRemove)
	}
	return s, nil
}

// User returns the user stored under key, such as "locked_out"
func (s *Store) User(key string) (User, error) {
	u, ok := s.doc.Users[key]
	if !ok {
		return User{}, fmt.Errorf("user %q: %w", key, ErrNotFound)
	}
	return u, nil
}

// Users returns every user, ordered by key
func (s *Store) Users() []User {
	out := make([]User, 0, len(s.userKeys))
	for _, k := range s.userKeys {
		out = append(out, s.doc.Users[k])
	}
	return out
}

// UsersWithOutcome returns the users expected to produce outcome, ordered by key
func (s *Store) UsersWithOutcome(outcome Outcome) []User {
	var out []User
	for _, u := range s.Users() {
		if u.Outcome == outcome {
			out = append(out, u)
		}
	}
	return out
}

// Products returns the catalog in file order
func (s *Store) Products() []Product {
	return append([]Product(nil), s.doc.Products...)
}

// Product looks a product up by name
func (s *Store) Product(name string) (Product, error) {
	p, ok := s.byProduct[name]
	if !ok {
		return Product{}, fmt.Errorf("product %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// SortOptions returns the sort options in file order
func (s *Store) SortOptions() []SortOption {
	return append([]SortOption(nil), s.doc.SortOptions...)
}

// Checkout returns the purchase expectations
func (s *Store) Checkout() Checkout {
	return s.doc.Checkout
}

// Cart returns the cart count expectations
func (s *Store) Cart() Cart {
	c := s.doc.Cart
	c.Add = append([]string(nil), c.Add...)
	return c
}
