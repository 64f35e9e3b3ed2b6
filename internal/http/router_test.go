package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotes/internal/auth"
	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entities"
	"github.com/mrlokans/quotes/internal/readonly"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	router *gin.Engine
	repo   *quotes.Repository
	db     *database.Database
}

// setupRouter builds the full router over a fresh database. mutate may adjust
// the config before the router is built.
func setupRouter(t *testing.T, mutate func(cfg *RouterConfig)) *testEnv {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "quotes.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	repo := quotes.NewRepository(db.DB)
	cfg := RouterConfig{
		Store:          repo,
		Database:       db,
		Logger:         discardLogger(),
		Pagination:     PageLimits{DefaultSize: 10, MaxSize: 100},
		SessionManager: auth.NewSessionManager(sqlDB, time.Hour, false),
		Version:        "test",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	router, err := NewRouter(cfg)
	require.NoError(t, err)
	return &testEnv{router: router, repo: repo, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) createQuote(t *testing.T, text, author string, tags ...string) *entities.QuoteDTO {
	t.Helper()
	quote, err := e.repo.CreateQuote(context.Background(), entities.QuoteCreateDTO{
		Quote:       text,
		AuthorName:  author,
		RelatedTags: tags,
	})
	require.NoError(t, err)
	return quote
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestRouter_RequestID(t *testing.T) {
	env := setupRouter(t, nil)

	rr := env.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
}

func TestRouter_SecurityHeaders(t *testing.T) {
	env := setupRouter(t, nil)

	rr := env.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Metrics(t *testing.T) {
	env := setupRouter(t, nil)
	env.createQuote(t, "q", "a", "t")
	env.do(t, http.MethodGet, "/api/quotes", nil)

	rr := env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `quotes_http_requests_total{method="GET",route="/api/quotes",status="200"} 1`)
	assert.Contains(t, body, `quotes_catalog_rows{entity="quote"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouter_CORS(t *testing.T) {
	env := setupRouter(t, func(cfg *RouterConfig) {
		cfg.CORSOrigins = []string{"https://example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/quotes", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/authors", nil)
	req.Header.Set("Origin", "https://other.example")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ReadOnly(t *testing.T) {
	env := setupRouter(t, func(cfg *RouterConfig) {
		cfg.ReadOnly = readonly.NewMiddleware(true)
	})
	env.createQuote(t, "q", "a")

	rr := env.do(t, http.MethodPost, "/api/quotes", entities.QuoteCreateDTO{Quote: "x", AuthorName: "y"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/quotes", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/quotes", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "read-only")
	assert.NotContains(t, rr.Body.String(), "/submitQuote")
}

func TestRouter_AdminGuard(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse-battery", 4)
	require.NoError(t, err)

	env := setupRouter(t, func(cfg *RouterConfig) {
		cfg.AdminGuard = auth.NewAdminGuard("admin", hash, nil, discardLogger())
	})
	quote := env.createQuote(t, "q", "a")
	path := fmt.Sprintf("/api/quotes/%d", quote.ID)

	rr := env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Reads stay public.
	rr = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.SetBasicAuth("admin", "correct-horse-battery")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_CSRF(t *testing.T) {
	env := setupRouter(t, func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte("test-secret-key-32-bytes-long!!!")
	})

	form := url.Values{"quote": {"q"}, "author_name": {"a"}}

	t.Run("form post without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("form post with the token from the form page succeeds", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/submitQuote", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		token := extractCSRFToken(t, rr.Body.String())

		withToken := url.Values{"quote": {"q"}, "author_name": {"a"}, "gorilla.csrf.Token": {token}}
		req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(withToken.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, cookie := range rr.Result().Cookies() {
			req.AddCookie(cookie)
		}
		rr = httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
	})

	t.Run("json api is not covered", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/quotes", entities.QuoteCreateDTO{Quote: "x", AuthorName: "y"})
		assert.Equal(t, http.StatusCreated, rr.Code)
	})
}

func extractCSRFToken(t *testing.T, body string) string {
	t.Helper()
	const marker = `name="gorilla.csrf.Token" value="`
	start := strings.Index(body, marker)
	require.NotEqual(t, -1, start, "csrf field missing from form")
	rest := body[start+len(marker):]
	end := strings.Index(rest, `"`)
	require.NotEqual(t, -1, end)
	return rest[:end]
}

func TestRouter_TemplatesPath(t *testing.T) {
	_, err := NewRouter(RouterConfig{
		Logger:        discardLogger(),
		TemplatesPath: filepath.Join(t.TempDir(), "missing"),
	})
	assert.Error(t, err)
}
