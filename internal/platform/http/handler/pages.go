package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page returns a minimal placeholder handler for a server-rendered page.
// The actual page content is rendered by the frontend; these handlers exist
// so the page-guard middleware has routes to make its redirect decisions on.
func Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}
