package services

import (
	"github.com/swaglabs/shopcheck/internal/models"
)

// AuthService checks storefront credentials
type AuthService interface {
	Authenticate(username, password string) (models.Account, error)
}

// AuthServiceImpl implements AuthService over a fixed set of accounts
type AuthServiceImpl struct {
	accounts map[string]models.Account
}

// NewAuthService creates an auth service for the given accounts
func NewAuthService(accounts []models.Account) AuthService {
	byName := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		byName[a.Username] = a
	}
	return &AuthServiceImpl{accounts: byName}
}

// Authenticate returns the account for a valid username and password.
// Missing fields are reported before the credentials are checked.
func (s *AuthServiceImpl) Authenticate(username, password string) (models.Account, error) {
	if username == "" {
		return models.Account{}, models.ErrUsernameRequired
	}
	if password == "" {
		return models.Account{}, models.ErrPasswordRequired
	}

	account, ok := s.accounts[username]
	if !ok {
		return models.Account{}, models.ErrInvalidCredentials
	}
	if err := account.Authenticate(password); err != nil {
		return models.Account{}, err
	}
	return account, nil
}
