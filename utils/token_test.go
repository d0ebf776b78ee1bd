package utils

import (
	"testing"
	"time"

	"github.com/shopping-mall/mall-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Email: "kim@example.com", Name: "Kim", Role: models.RoleAdmin}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "kim@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := NewTokenManager("one", time.Hour)
	signed, err := issuer.Issue(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(signed)
	assert.Error(t, err)

	expired := NewTokenManager("one", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue(&models.User{ID: 1})
	require.NoError(t, err)
	_, err = issuer.Parse(old)
	assert.Error(t, err)
}
