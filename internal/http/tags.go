package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/entities"
)

const (
	msgNoTags      = "No tags found"
	msgTagNotFound = "Tag not found"
)

type TagsResponse struct {
	Tags  []entities.TagDTO `json:"tags"`
	Pages int64             `json:"pages"`
}

type TagQuotesResponse struct {
	Tag    entities.TagDTO     `json:"tag"`
	Quotes []entities.QuoteDTO `json:"quotes"`
	Pages  int64               `json:"pages"`
}

type TagsController struct {
	store  TagStore
	limits PageLimits
}

func NewTagsController(store TagStore, limits PageLimits) *TagsController {
	return &TagsController{store: store, limits: limits}
}

// GetTags returns one page of tags
// GET /api/tags
func (tc *TagsController) GetTags(c *gin.Context) {
	page, size, ok := tc.limits.parsePagination(c)
	if !ok {
		return
	}

	result, err := tc.store.GetTagsPage(c.Request.Context(), page, size)
	if err != nil {
		respondStoreError(c, err, msgNoTags, "get tags page")
		return
	}

	c.JSON(http.StatusOK, TagsResponse{Tags: result.Items, Pages: result.TotalPages})
}

// GetTag returns a tag with one page of its quotes. A tag without quotes is reported as not found.
// GET /api/tags/:id
func (tc *TagsController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, size, ok := tc.limits.parsePagination(c)
	if !ok {
		return
	}

	result, err := tc.store.GetTagWithQuotes(c.Request.Context(), id, page, size)
	if err != nil {
		respondStoreError(c, err, msgTagNotFound, "get tag with quotes")
		return
	}

	c.JSON(http.StatusOK, TagQuotesResponse{
		Tag:    result.Tag,
		Quotes: result.Quotes.Items,
		Pages:  result.Quotes.TotalPages,
	})
}

// DeleteTag removes a tag
// DELETE /api/tags/:id
func (tc *TagsController) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.DeleteTag(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete tag")
		return
	}

	c.Status(http.StatusNoContent)
}
