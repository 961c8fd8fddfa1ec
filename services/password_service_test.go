package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, svc.Compare("secret1", hash))
	assert.False(t, svc.Compare("secret2", hash))
	assert.False(t, svc.Compare("secret1", "not-a-hash"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordServiceFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultPasswordCost, NewPasswordService(0).cost)
	assert.Equal(t, DefaultPasswordCost, NewPasswordService(99).cost)
}
