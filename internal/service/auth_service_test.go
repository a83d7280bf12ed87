package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/model"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // Minimum cost keeps the test fast.
	}
	return NewAuthService(cfg, nil, nil)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	svc := testAuthService()

	hash, err := svc.HashPassword("password123")
	require.NoError(t, err)
	assert.NoError(t, svc.CheckPassword(hash, "password123"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_CarriesRoleClaim(t *testing.T) {
	svc := testAuthService()
	now := time.Now()

	signed := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestValidateToken_AdminStatusIgnoresEmailShape(t *testing.T) {
	// An email containing "admin" must not grant the admin role; only the
	// verified claim counts.
	svc := testAuthService()
	now := time.Now()

	signed := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "fake-admin@example.com",
		Role:  model.RoleUser,
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	svc := testAuthService()
	now := time.Now()

	signed := signTestToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := testAuthService()

	signed := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := svc.ValidateToken(signed)
	assert.Error(t, err)
}
