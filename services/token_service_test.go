package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 0)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)

	tok, err := svc.Issue(Principal{ID: 42, Email: "a@x.io", Role: RoleAdmin})
	require.NoError(t, err)

	p, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: 42, Email: "a@x.io", Role: RoleAdmin}, p)
	assert.True(t, p.IsAdmin())
}

func TestTokenRejections(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tok, err := svc.Issue(Principal{ID: 1, Email: "u@x.io", Role: RoleUser})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return base }
	other := NewTokenService("other-secret", time.Minute)
	other.now = svc.now
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token without an expiry or with an unknown role is refused.
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role:             RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	})
	signed, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badRole, err := svc.Issue(Principal{ID: 1, Role: "root"})
	require.NoError(t, err)
	_, err = svc.Verify(badRole)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// HS384 is not accepted even with the right key.
	wrongAlg := jwt.NewWithClaims(jwt.SigningMethodHS384, tokenClaims{
		Role: RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(base.Add(time.Minute)),
		},
	})
	signed, err = wrongAlg.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
