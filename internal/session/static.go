package session

import (
	"context"
	"errors"
)

// StaticProvider is an IdentityProvider backed by a fixed credential table.
// Used by tests and the console client's offline mode.
type StaticProvider struct {
	// Accounts maps email to password.
	Accounts map[string]string
	// Admins lists emails holding the admin role.
	Admins map[string]bool
}

// ErrBadCredentials is returned for unknown accounts or wrong passwords.
var ErrBadCredentials = errors.New("invalid email or password")

// Login verifies the credentials against the static table.
func (p *StaticProvider) Login(_ context.Context, email, password string) (string, User, error) {
	want, ok := p.Accounts[email]
	if !ok || want != password {
		return "", User{}, ErrBadCredentials
	}
	return "static-token-" + email, User{Email: email, Admin: p.Admins[email]}, nil
}

// Logout is a no-op for static sessions.
func (p *StaticProvider) Logout(context.Context, string) error {
	return nil
}
