package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stelihq/steli-backend/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: 42, Username: "bob"}
}

func TestIssueAndResolve(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))

	tokenString, err := tokens.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := tokens.Resolve(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestResolveRejectsGarbage(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))

	_, err := tokens.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	issuer := NewTokens([]byte("secret-a"))
	verifier := NewTokens([]byte("secret-b"))

	tokenString, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Resolve(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsExpired(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	tokens.now = func() time.Time { return time.Now().Add(-2 * tokenTTL) }

	tokenString, err := tokens.Issue(testUser())
	require.NoError(t, err)

	_, err = tokens.Resolve(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))

	tokenString, err := tokens.Issue(testUser())
	require.NoError(t, err)

	_, err = tokens.Resolve(tokenString)
	require.NoError(t, err)

	tokens.Revoke(tokenString)
	_, err = tokens.Resolve(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A fresh token for the same user still works
	fresh, err := tokens.Issue(testUser())
	require.NoError(t, err)
	_, err = tokens.Resolve(fresh)
	assert.NoError(t, err)
}

func TestRevokeIgnoresGarbage(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	tokens.Revoke("not-a-token") // must not panic
}
