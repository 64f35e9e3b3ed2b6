package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextKeyAdmin is set to true once a request passed admin authentication.
const ContextKeyAdmin = "auth_admin"

const adminRealm = `Basic realm="quotes admin", charset="UTF-8"`

// AdminGuard enforces HTTP basic auth on destructive routes.
type AdminGuard struct {
	username     string
	passwordHash string
	limiter      *RateLimiter
	logger       *slog.Logger
}

// NewAdminGuard returns a guard; with an empty passwordHash every request is let through.
func NewAdminGuard(username, passwordHash string, limiter *RateLimiter, logger *slog.Logger) *AdminGuard {
	return &AdminGuard{
		username:     username,
		passwordHash: passwordHash,
		limiter:      limiter,
		logger:       logger,
	}
}

func (g *AdminGuard) Enabled() bool {
	return g.passwordHash != ""
}

func (g *AdminGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Enabled() {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			g.unauthorized(c)
			return
		}

		ip := c.ClientIP()
		if g.limiter != nil {
			if allowed, retryAfter := g.limiter.Allow(ip, username); !allowed {
				c.Header("Retry-After", retryAfterSeconds(retryAfter))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts"})
				return
			}
		}

		usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
		// Always run bcrypt so a wrong username costs the same as a wrong password.
		passwordErr := CheckPassword(password, g.passwordHash)
		if !usernameMatches || passwordErr != nil {
			if g.limiter != nil {
				if locked, _ := g.limiter.RecordFailure(ip, username); locked {
					g.logger.Warn("admin login locked out", "ip", ip, "username", username)
				}
			}
			g.unauthorized(c)
			return
		}

		if g.limiter != nil {
			g.limiter.RecordSuccess(ip, username)
		}
		c.Set(ContextKeyAdmin, true)
		c.Next()
	}
}

func (g *AdminGuard) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", adminRealm)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// IsAdmin reports whether the request was authenticated by AdminGuard.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextKeyAdmin)
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(d.Round(time.Second).Seconds()))
}
