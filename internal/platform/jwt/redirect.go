package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Page paths involved in the routing rules below.
const (
	PathRoot      = "/"
	PathSignIn    = "/sign-in"
	PathSignUp    = "/sign-up"
	PathVerify    = "/verify"
	PathDashboard = "/dashboard"
)

// PageGuard returns a Gin middleware that routes page requests based on the
// presence of a valid access token. Rules, evaluated in order:
//
//  1. valid token and the path is sign-in, sign-up, verify or root
//     -> redirect to the dashboard
//  2. no valid token and the path is under the dashboard prefix
//     -> redirect to sign-in
//  3. otherwise pass through unchanged
//
// The decision is purely a routing one; no state is mutated.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		valid := hasValidToken(c)
		path := c.Request.URL.Path

		switch {
		case valid && isAuthPage(path):
			c.Redirect(http.StatusTemporaryRedirect, PathDashboard)
			c.Abort()
		case !valid && strings.HasPrefix(path, PathDashboard):
			c.Redirect(http.StatusTemporaryRedirect, PathSignIn)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// isAuthPage reports whether the path belongs to the pre-login page set.
func isAuthPage(path string) bool {
	return path == PathRoot ||
		strings.HasPrefix(path, PathSignIn) ||
		strings.HasPrefix(path, PathSignUp) ||
		strings.HasPrefix(path, PathVerify)
}

// hasValidToken reports whether the request carries a verifiable access
// token, either in the Authorization header or the access token cookie.
func hasValidToken(c *gin.Context) bool {
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return false
	}

	tokenStr := ""
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenStr = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie, err := c.Cookie("access_token"); err == nil {
		tokenStr = cookie
	}
	if tokenStr == "" {
		return false
	}

	_, err := parseClaims(secret, tokenStr)
	return err == nil
}
