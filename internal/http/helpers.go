package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/database/quotes"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends the message as is, e.g. "Quote not found".
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	requestLogger(c).Error("internal error", "op", context, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondStoreError maps catalog errors onto 400, 404 or 500.
func respondStoreError(c *gin.Context, err error, notFoundMessage, context string) {
	switch {
	case errors.Is(err, quotes.ErrInvalidPage):
		respondBadRequest(c, "page and page_size must be positive integers")
	case errors.Is(err, quotes.ErrNotFound):
		respondNotFound(c, notFoundMessage)
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := parseUintParam(c, paramName)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

func parseUintParam(c *gin.Context, paramName string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}
	return uint(id), nil
}

// PageLimits bounds the page_size query parameter.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// pagination reads page and page_size, clamping page_size to MaxSize.
func (l PageLimits) pagination(c *gin.Context) (page, size int, err error) {
	if page, err = positiveQueryInt(c, "page", 1); err != nil {
		return 0, 0, err
	}
	if size, err = positiveQueryInt(c, "page_size", l.DefaultSize); err != nil {
		return 0, 0, err
	}
	if l.MaxSize > 0 && size > l.MaxSize {
		size = l.MaxSize
	}
	return page, size, nil
}

// parsePagination is pagination for JSON handlers: on invalid input it
// responds with 400 and returns ok == false.
func (l PageLimits) parsePagination(c *gin.Context) (page, size int, ok bool) {
	page, size, err := l.pagination(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, 0, false
	}
	return page, size, true
}

func positiveQueryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return value, nil
}

// --- HTMX Support ---

func isHTMXRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// --- Logging ---

// requestLogger returns the logger carrying the request id, or the default logger.
func requestLogger(c *gin.Context) *slog.Logger {
	if value, ok := c.Get(contextKeyLogger); ok {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
