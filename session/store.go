// Package session persists the auth token and current-user record between
// runs. Token and user are written by the same login/logout flows and must
// always be set or cleared together; individual accessors never touch the
// other key.
package session

import (
	"carelink/models"
	"carelink/utils"
)

// Store is the durable key/value session state. A missing value is returned
// as the zero value with a nil error; errors are reserved for backend faults.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error

	User() (*models.User, error)
	SetUser(user *models.User) error
	ClearUser() error
}

// Save persists token and user together after a successful login or
// registration.
func Save(s Store, token string, user *models.User) error {
	if err := s.SetToken(token); err != nil {
		return err
	}
	return s.SetUser(user)
}

// Clear removes both halves of the session on logout.
func Clear(s Store) error {
	if err := s.ClearToken(); err != nil {
		return err
	}
	return s.ClearUser()
}

// Active reports whether the store holds a usable session: both token and
// user present, and the token not past its expiry claim.
func Active(s Store) (bool, error) {
	token, err := s.Token()
	if err != nil {
		return false, err
	}
	if token == "" || utils.TokenExpired(token) {
		return false, nil
	}
	user, err := s.User()
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
