// Package jwtmw provides JWT token generation and Gin middleware for
// access control.
package jwtmw

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Claims is the set of identity claims embedded in an access token.
// The values are a snapshot taken at token issuance: changes to the
// verification or acceptance flags after login are not reflected until
// the user re-authenticates.
type Claims struct {
	Username            string `json:"username"`
	IsVerified          bool   `json:"verified"`
	IsAcceptingMessages bool   `json:"accepting"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user ID stored in the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return uint(id), nil
}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, username string, isVerified, isAcceptingMessages bool) (string, error)

	// TTL returns the access token lifetime.
	TTL() time.Duration
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT token carrying the identity claims.
func (g *generator) GenerateToken(userID uint, username string, isVerified, isAcceptingMessages bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:            username,
		IsVerified:          isVerified,
		IsAcceptingMessages: isAcceptingMessages,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// TTL returns the access token lifetime.
func (g *generator) TTL() time.Duration {
	return g.expiration
}

// parseClaims parses and verifies a signed token string, returning its claims.
func parseClaims(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
