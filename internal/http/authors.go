package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/entities"
)

const (
	msgNoAuthors      = "No authors found"
	msgAuthorNotFound = "Author not found"
)

type AuthorsResponse struct {
	Authors []entities.AuthorDTO `json:"authors"`
	Pages   int64                `json:"pages"`
}

type AuthorQuotesResponse struct {
	Author entities.AuthorDTO  `json:"author"`
	Quotes []entities.QuoteDTO `json:"quotes"`
	Pages  int64               `json:"pages"`
}

type AuthorsController struct {
	store  AuthorStore
	limits PageLimits
}

func NewAuthorsController(store AuthorStore, limits PageLimits) *AuthorsController {
	return &AuthorsController{store: store, limits: limits}
}

// GET /api/authors
func (ac *AuthorsController) GetAuthors(c *gin.Context) {
	page, size, ok := ac.limits.parsePagination(c)
	if !ok {
		return
	}

	result, err := ac.store.GetAuthorsPage(c.Request.Context(), page, size)
	if err != nil {
		respondStoreError(c, err, msgNoAuthors, "get authors page")
		return
	}

	c.JSON(http.StatusOK, AuthorsResponse{Authors: result.Items, Pages: result.TotalPages})
}

// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, size, ok := ac.limits.parsePagination(c)
	if !ok {
		return
	}

	result, err := ac.store.GetAuthorWithQuotes(c.Request.Context(), id, page, size)
	if err != nil {
		respondStoreError(c, err, msgAuthorNotFound, "get author with quotes")
		return
	}

	c.JSON(http.StatusOK, AuthorQuotesResponse{
		Author: result.Author,
		Quotes: result.Quotes.Items,
		Pages:  result.Quotes.TotalPages,
	})
}
