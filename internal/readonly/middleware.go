// Package readonly serves the catalog without accepting changes.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const message = "The catalog is read-only"

// ContextKey stores the read-only flag for template rendering.
const ContextKey = "read_only"

// Middleware rejects every unsafe method while enabled.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		respondBlocked(c)
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func respondBlocked(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Reswap", "none")
		c.Header("HX-Trigger", `{"showToast": {"message": "`+message+`", "type": "warning"}}`)
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     message,
			"read_only": true,
		})
		return
	}

	c.String(http.StatusForbidden, message)
	c.Abort()
}
