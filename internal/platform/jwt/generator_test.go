package jwtmw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	const secret = "test-secret-key"

	t.Run("claims round-trip through signing and parsing", func(t *testing.T) {
		gen := NewGenerator(secret, 15*time.Minute)

		signed, err := gen.GenerateToken(42, "alice", true, false)
		require.NoError(t, err, "failed to generate token")
		require.NotEmpty(t, signed)

		claims, err := parseClaims(secret, signed)
		require.NoError(t, err, "failed to parse token")

		userID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
		assert.Equal(t, "alice", claims.Username)
		assert.True(t, claims.IsVerified)
		assert.False(t, claims.IsAcceptingMessages)
	})

	t.Run("expiration matches the configured TTL", func(t *testing.T) {
		gen := NewGenerator(secret, time.Hour)

		signed, err := gen.GenerateToken(1, "alice", true, true)
		require.NoError(t, err)

		claims, err := parseClaims(secret, signed)
		require.NoError(t, err)

		lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		assert.Equal(t, time.Hour, lifetime)
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		gen := NewGenerator(secret, 15*time.Minute)

		signed, err := gen.GenerateToken(1, "alice", true, true)
		require.NoError(t, err)

		_, err = parseClaims("different-secret", signed)
		assert.Error(t, err, "token signed with another secret must be rejected")
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		gen := NewGenerator(secret, -time.Minute)

		signed, err := gen.GenerateToken(1, "alice", true, true)
		require.NoError(t, err)

		_, err = parseClaims(secret, signed)
		assert.Error(t, err, "expired token must be rejected")
	})

	t.Run("garbage token fails verification", func(t *testing.T) {
		_, err := parseClaims(secret, "not-a-jwt")
		assert.Error(t, err)
	})
}

func TestGenerator_TTL(t *testing.T) {
	gen := NewGenerator("secret", 15*time.Minute)

	assert.Equal(t, 15*time.Minute, gen.TTL())
}
