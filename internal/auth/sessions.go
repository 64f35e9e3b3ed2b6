package auth

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data keys
const (
	SessionKeyFlash      = "flash"
	SessionKeyFlashError = "flash_error"
)

// SessionManager wraps scs.SessionManager with flash message helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager stores sessions in the sessions table created by the
// schema migrations. sqlDB is the *sql.DB underneath gorm.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secure bool) *SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	// Lax so the flash survives the redirect after a form post.
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// SetFlash stores a one-shot message shown on the next rendered page.
func (sm *SessionManager) SetFlash(r *http.Request, message string) {
	sm.Put(r.Context(), SessionKeyFlash, message)
}

// SetFlashError stores a one-shot error message.
func (sm *SessionManager) SetFlashError(r *http.Request, message string) {
	sm.Put(r.Context(), SessionKeyFlashError, message)
}

// Flash holds the messages popped for one render.
type Flash struct {
	Message string
	Error   string
}

// PopFlash returns and clears both flash messages.
func (sm *SessionManager) PopFlash(r *http.Request) Flash {
	return Flash{
		Message: sm.PopString(r.Context(), SessionKeyFlash),
		Error:   sm.PopString(r.Context(), SessionKeyFlashError),
	}
}
