// Package session holds the process-wide identity state for a client
// session. The Context is the single writer; every other component reads
// immutable snapshots. Admin status comes from the identity provider's
// verified role claim, never from inspecting the email address.
package session

import (
	"context"
	"sync"
)

// User is the authenticated profile exposed to the rest of the client.
type User struct {
	Email string
	Admin bool
}

// Session is an immutable snapshot of the identity state.
type Session struct {
	Authenticated bool
	User          *User
	Token         string
}

// IdentityProvider is the external collaborator that issues bearer tokens
// and profiles. The application consumes only this contract; the handshake
// behind it is the provider's concern.
type IdentityProvider interface {
	// Login exchanges credentials for an opaque bearer token and profile.
	Login(ctx context.Context, email, password string) (token string, user User, err error)

	// Logout invalidates the token with the provider. Best effort; local
	// state is cleared regardless.
	Logout(ctx context.Context, token string) error
}

// Context owns the session state. Initialized once per application
// lifetime; safe for concurrent readers.
type Context struct {
	mu       sync.RWMutex
	provider IdentityProvider
	current  Session
}

// NewContext creates an unauthenticated Context backed by the provider.
func NewContext(provider IdentityProvider) *Context {
	return &Context{provider: provider}
}

// Login delegates to the identity provider and, on success, populates the
// session. On failure the previous state is kept.
func (c *Context) Login(ctx context.Context, email, password string) error {
	token, user, err := c.provider.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.current = Session{Authenticated: true, User: &user, Token: token}
	c.mu.Unlock()
	return nil
}

// Logout clears the session. Operations issued after this point see an
// unauthenticated snapshot, including ones racing an in-flight request.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.current.Token
	c.current = Session{}
	c.mu.Unlock()

	if token == "" {
		return nil
	}
	return c.provider.Logout(ctx, token)
}

// Current returns a snapshot of the session state.
func (c *Context) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.current
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// IsAuthenticated reports whether a user is logged in.
func (c *Context) IsAuthenticated() bool {
	return c.Current().Authenticated
}

// IsAdmin reports whether the logged-in user holds the admin role.
func (c *Context) IsAdmin() bool {
	s := c.Current()
	return s.Authenticated && s.User != nil && s.User.Admin
}

// Token returns the current bearer token, or "" when logged out.
func (c *Context) Token() string {
	return c.Current().Token
}
