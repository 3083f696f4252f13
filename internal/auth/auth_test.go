package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	t.Run("issue and verify", func(t *testing.T) {
		token, err := issuer.Issue("42", "ada@example.com")
		require.NoError(t, err)

		user, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "42", user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.False(t, user.ExpiresAt.IsZero())
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewIssuer("other-secret", time.Hour).Issue("42", "")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		past := NewIssuer("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue("42", "")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestInspect(t *testing.T) {
	token, err := NewIssuer("whatever", time.Hour).Issue("7", "bob@example.com")
	require.NoError(t, err)

	user := Inspect(token)
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, "bob@example.com", user.Email)

	assert.Equal(t, "", Inspect("opaque-token").ID)
}

func TestSession(t *testing.T) {
	t.Run("static token source", func(t *testing.T) {
		token, err := StaticToken("abc").Token(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "abc", token)

		_, err = StaticToken("").Token(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("opaque token is usable", func(t *testing.T) {
		s := NewSession("opaque", nil, zerolog.Nop())
		token, err := s.Token(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "opaque", token)
		assert.True(t, s.LoggedIn())
	})

	t.Run("expired token is refused locally", func(t *testing.T) {
		issuer := NewIssuer("secret", time.Hour)
		issuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
		token, err := issuer.Issue("1", "")
		require.NoError(t, err)

		s := NewSession(token, nil, zerolog.Nop())
		_, err = s.Token(context.Background())
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.False(t, s.LoggedIn())
	})

	t.Run("unauthorized logs out and reprompts", func(t *testing.T) {
		reprompted := false
		s := NewSession("opaque", func(context.Context) { reprompted = true }, zerolog.Nop())

		s.HandleUnauthorized(context.Background())

		assert.True(t, reprompted)
		_, err := s.Token(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
		_, ok := s.User()
		assert.False(t, ok)
	})
}
