package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entities"
)

const (
	msgNoQuotes      = "No quotes found"
	msgQuoteNotFound = "Quote not found"
)

// QuotesResponse is one page of the quote listing.
type QuotesResponse struct {
	Quotes []entities.QuoteDTO `json:"quotes"`
	Pages  int64               `json:"pages"`
}

type QuotesController struct {
	store  QuoteStore
	limits PageLimits
}

func NewQuotesController(store QuoteStore, limits PageLimits) *QuotesController {
	return &QuotesController{store: store, limits: limits}
}

// GetQuotes returns one page of quotes
// GET /api/quotes?page=&page_size=
func (qc *QuotesController) GetQuotes(c *gin.Context) {
	page, size, ok := qc.limits.parsePagination(c)
	if !ok {
		return
	}

	result, err := qc.store.GetQuotesPage(c.Request.Context(), page, size)
	if err != nil {
		respondStoreError(c, err, msgNoQuotes, "get quotes page")
		return
	}

	c.JSON(http.StatusOK, QuotesResponse{Quotes: result.Items, Pages: result.TotalPages})
}

// CreateQuote stores a quote with its author and tags
// POST /api/quotes
func (qc *QuotesController) CreateQuote(c *gin.Context) {
	var req entities.QuoteCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrorMessage(err))
		return
	}

	quote, err := qc.store.CreateQuote(c.Request.Context(), req)
	if err != nil {
		respondInternalError(c, err, "create quote")
		return
	}

	respondCreated(c, quote)
}

// GetQuote returns a single quote
// GET /api/quotes/:id
func (qc *QuotesController) GetQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := qc.store.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, msgQuoteNotFound, "get quote")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// AddTag attaches a tag to a quote, creating the tag when needed
// PATCH /api/quotes/:id
func (qc *QuotesController) AddTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.TagCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrorMessage(err))
		return
	}

	quote, err := qc.store.UpdateQuoteTag(c.Request.Context(), id, req.Tag)
	if err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			respondNotFound(c, msgQuoteNotFound)
			return
		}
		respondInternalError(c, err, "update quote tag")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// DeleteQuote removes a quote; missing ids are not an error
// DELETE /api/quotes/:id
func (qc *QuotesController) DeleteQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := qc.store.DeleteQuote(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete quote")
		return
	}

	c.Status(http.StatusNoContent)
}
