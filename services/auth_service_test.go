package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-backend/services"
)

func TestSignup(t *testing.T) {
	f := newFixture(t)
	in := services.AccountInput{FirstName: "Alice", LastName: "Admin", Email: "alice@example.com", Password: "secret1"}

	res, err := f.auth.Signup(f.ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "alice@example.com", res.Admin.Email)
	assert.Empty(t, res.Admin.Role)

	p, err := f.tokens.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.Admin.ID, p.ID)
	assert.Equal(t, services.RoleAdmin, p.Role)

	_, err = f.auth.Signup(f.ctx, in)
	assert.True(t, services.IsKind(err, services.KindConflict), "got %v", err)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	u := f.user(t, "Uma", "User", "uma@example.com", a.ID)

	res, err := f.auth.Login(f.ctx, services.Credentials{Email: "boss@example.com", Password: "secret1", Role: services.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.User.ID)
	assert.Equal(t, services.RoleAdmin, res.User.Role)

	res, err = f.auth.Login(f.ctx, services.Credentials{Email: "uma@example.com", Password: "secret1", Role: services.RoleUser})
	require.NoError(t, err)
	p, err := f.tokens.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, services.Principal{ID: u.ID, Email: "uma@example.com", Role: services.RoleUser}, p)

	rejected := []services.Credentials{
		{Email: "boss@example.com", Password: "wrong-pass", Role: services.RoleAdmin},
		{Email: "boss@example.com", Password: "secret1", Role: services.RoleUser},
		{Email: "uma@example.com", Password: "secret1", Role: services.RoleAdmin},
		{Email: "ghost@example.com", Password: "secret1", Role: services.RoleUser},
		{Email: "boss@example.com", Password: "secret1", Role: "owner"},
	}
	for _, c := range rejected {
		_, err := f.auth.Login(f.ctx, c)
		assert.True(t, services.IsKind(err, services.KindUnauthorized), "%+v: got %v", c, err)
	}
}

func TestLoginUser(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "boss@example.com")
	f.user(t, "Uma", "User", "uma@example.com", a.ID)

	res, err := f.auth.LoginUser(f.ctx, services.Credentials{Email: "uma@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	_, err = f.auth.LoginUser(f.ctx, services.Credentials{Email: "boss@example.com", Password: "secret1", Role: services.RoleAdmin})
	assert.True(t, services.IsKind(err, services.KindUnauthorized))
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	p := services.Principal{ID: 1, Email: "a@example.com", Role: services.RoleAdmin}
	assert.Equal(t, "Logout successful", f.auth.Logout(p).Message)
	assert.Equal(t, "Logout successful", f.auth.LogoutUser(p).Message)
}
