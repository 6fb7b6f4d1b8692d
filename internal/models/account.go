package models

import "errors"

// Quirk marks an account whose storefront behaviour deliberately deviates
type Quirk string

// Account quirks
const (
	QuirkNone              Quirk = ""
	QuirkProblem           Quirk = "problem"
	QuirkPerformanceGlitch Quirk = "performance_glitch"
)

// DefaultAccountPassword is shared by every storefront account
const DefaultAccountPassword = "secret_sauce"

// Authentication errors
var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("username and password do not match")
	ErrLockedOut          = errors.New("user has been locked out")
)

// Account is a storefront login
type Account struct {
	Username  string
	Password  string
	LockedOut bool
	Quirk     Quirk
}

// Authenticate checks a password against the account
func (a Account) Authenticate(password string) error {
	if a.Password != password {
		return ErrInvalidCredentials
	}
	if a.LockedOut {
		return ErrLockedOut
	}
	return nil
}

// DefaultAccounts returns the accounts accepted by the storefront
func DefaultAccounts() []Account {
	return []Account{
		{Username: "standard_user", Password: DefaultAccountPassword},
		{Username: "locked_out_user", Password: DefaultAccountPassword, LockedOut: true},
		{Username: "problem_user", Password: DefaultAccountPassword, Quirk: QuirkProblem},
		{Username: "performance_glitch_user", Password: DefaultAccountPassword, Quirk: QuirkPerformanceGlitch},
	}
}
