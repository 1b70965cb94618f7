package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signTestToken issues a token signed with the given secret for middleware tests.
func signTestToken(t *testing.T, secret string, userID uint, username string) string {
	t.Helper()

	signed, err := NewGenerator(secret, 15*time.Minute).GenerateToken(userID, username, true, true)
	require.NoError(t, err, "failed to sign test token")
	return signed
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "middleware-test-secret"

	t.Run("valid token passes and populates the context", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)

		var gotUserID uint
		var gotUsername string
		router := gin.New()
		router.GET("/protected", AuthRequired(), func(c *gin.Context) {
			gotUserID = c.GetUint(ContextUserID)
			gotUsername = c.GetString(ContextUsername)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 42, "alice"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), gotUserID)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("missing Authorization header", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)

		router := gin.New()
		router.GET("/protected", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header without Bearer prefix", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)

		router := gin.New()
		router.GET("/protected", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", signTestToken(t, secret, 1, "alice"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)

		router := gin.New()
		router.GET("/protected", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", 1, "alice"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing JWT_SECRET is a server error", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, "")

		router := gin.New()
		router.GET("/protected", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
