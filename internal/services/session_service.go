package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swaglabs/shopcheck/internal/models"
)

// ErrSessionNotFound is returned for unknown or ended sessions
var ErrSessionNotFound = errors.New("session not found")

// Session is a snapshot of one signed-in browser
type Session struct {
	ID       string
	Username string
	Quirk    models.Quirk
	// CartItems are product IDs in the order they were added.
	CartItems []int
	// Customer is set once the checkout information step succeeded.
	Customer *models.Customer
	// LastOrder is the reference of the most recent order.
	LastOrder string
}

// SessionService keeps signed-in sessions and their carts. Every session
// owns its cart, so two browsers never share items.
type SessionService interface {
	Start(account models.Account) (Session, error)
	Get(id string) (Session, error)
	End(id string) error
	AddToCart(id string, productID int) error
	RemoveFromCart(id string, productID int) error
	SetCustomer(id string, customer models.Customer) error
	CompleteCheckout(id, orderReference string) error
}

type sessionState struct {
	username  string
	quirk     models.Quirk
	cart      models.Cart
	customer  *models.Customer
	lastOrder string
	lastSeen  time.Time
}

// SessionServiceImpl implements SessionService in memory
type SessionServiceImpl struct {
	catalog     *models.Catalog
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewSessionService creates a session service; cart operations are
// checked against catalog. Sessions untouched for idleTimeout end as if
// logged out; zero keeps them until logout.
func NewSessionService(catalog *models.Catalog, idleTimeout time.Duration) SessionService {
	return &SessionServiceImpl{
		catalog:     catalog,
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*sessionState),
	}
}

// Start opens a session with an empty cart. Expired sessions are dropped
// first.
func (s *SessionServiceImpl) Start(account models.Account) (Session, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for sid, st := range s.sessions {
		if s.expired(st, now) {
			delete(s.sessions, sid)
		}
	}
	st := &sessionState{username: account.Username, quirk: account.Quirk, lastSeen: now}
	s.sessions[id] = st
	return st.snapshot(id), nil
}

// Len returns the number of live sessions
func (s *SessionServiceImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionServiceImpl) expired(st *sessionState, now time.Time) bool {
	return s.idleTimeout > 0 && now.Sub(st.lastSeen) > s.idleTimeout
}

// lookup returns the live session under id and marks it as used. The
// caller holds s.mu.
func (s *SessionServiceImpl) lookup(id string) (*sessionState, bool) {
	st, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(st, now) {
		delete(s.sessions, id)
		return nil, false
	}
	st.lastSeen = now
	return st, true
}

// Get returns a snapshot of the session
func (s *SessionServiceImpl) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return st.snapshot(id), nil
}

// End forgets the session and its cart
func (s *SessionServiceImpl) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// AddToCart puts a catalog product in the session's cart
func (s *SessionServiceImpl) AddToCart(id string, productID int) error {
	if _, err := s.catalog.Get(productID); err != nil {
		return err
	}
	return s.update(id, func(st *sessionState) error {
		return st.cart.Add(productID)
	})
}

// RemoveFromCart takes a product out of the session's cart
func (s *SessionServiceImpl) RemoveFromCart(id string, productID int) error {
	return s.update(id, func(st *sessionState) error {
		return st.cart.Remove(productID)
	})
}

// SetCustomer records validated checkout information
func (s *SessionServiceImpl) SetCustomer(id string, customer models.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	return s.update(id, func(st *sessionState) error {
		st.customer = &customer
		return nil
	})
}

// CompleteCheckout empties the cart after an order was placed
func (s *SessionServiceImpl) CompleteCheckout(id, orderReference string) error {
	return s.update(id, func(st *sessionState) error {
		st.cart.Clear()
		st.customer = nil
		st.lastOrder = orderReference
		return nil
	})
}

func (s *SessionServiceImpl) update(id string, fn func(st *sessionState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}
	if err := fn(st); err != nil {
		return fmt.Errorf("session %s: %w", id, err)
	}
	return nil
}

func (st *sessionState) snapshot(id string) Session {
	sess := Session{
		ID:        id,
		Username:  st.username,
		Quirk:     st.quirk,
		CartItems: st.cart.Items(),
		LastOrder: st.lastOrder,
	}
	if st.customer != nil {
		c := *st.customer
		sess.Customer = &c
	}
	return sess
}
