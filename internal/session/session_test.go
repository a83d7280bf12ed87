package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *StaticProvider {
	return &StaticProvider{
		Accounts: map[string]string{
			"admin@example.com": "password123",
			"user@example.com":  "password123",
		},
		Admins: map[string]bool{"admin@example.com": true},
	}
}

func TestLogin_PopulatesSession(t *testing.T) {
	c := NewContext(testProvider())
	assert.False(t, c.IsAuthenticated())

	require.NoError(t, c.Login(context.Background(), "admin@example.com", "password123"))

	snap := c.Current()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "admin@example.com", snap.User.Email)
	assert.True(t, c.IsAdmin())
	assert.NotEmpty(t, c.Token())
}

func TestLogin_FailureKeepsPriorState(t *testing.T) {
	c := NewContext(testProvider())
	require.NoError(t, c.Login(context.Background(), "user@example.com", "password123"))

	err := c.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.True(t, c.IsAuthenticated())
	assert.False(t, c.IsAdmin())
}

func TestLogout_ClearsSession(t *testing.T) {
	c := NewContext(testProvider())
	require.NoError(t, c.Login(context.Background(), "admin@example.com", "password123"))
	require.NoError(t, c.Logout(context.Background()))

	assert.False(t, c.IsAuthenticated())
	assert.False(t, c.IsAdmin())
	assert.Empty(t, c.Token())
	assert.Nil(t, c.Current().User)
}

func TestCurrent_SnapshotIsIsolated(t *testing.T) {
	c := NewContext(testProvider())
	require.NoError(t, c.Login(context.Background(), "user@example.com", "password123"))

	snap := c.Current()
	snap.User.Email = "tampered@example.com"

	assert.Equal(t, "user@example.com", c.Current().User.Email)
}
