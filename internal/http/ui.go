package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/auth"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entities"
	"github.com/mrlokans/quotes/internal/readonly"
)

// quoteForm is the HTML form payload; tags arrive as one comma separated field.
type quoteForm struct {
	Quote       string `form:"quote" binding:"required,notblank"`
	AuthorName  string `form:"author_name" binding:"required,notblank"`
	RelatedTags string `form:"related_tags"`
}

func (f quoteForm) toCreateDTO() entities.QuoteCreateDTO {
	return entities.QuoteCreateDTO{
		Quote:       f.Quote,
		AuthorName:  f.AuthorName,
		RelatedTags: splitTags(f.RelatedTags),
	}
}

// splitTags drops empty entries so "a, ,b," yields [a b].
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type UIController struct {
	store    CatalogStore
	sessions *auth.SessionManager
	limits   PageLimits
}

// NewUIController builds the HTML pages; sessions may be nil, which disables flash messages.
func NewUIController(store CatalogStore, sessions *auth.SessionManager, limits PageLimits) *UIController {
	return &UIController{store: store, sessions: sessions, limits: limits}
}

// render adds the data every page needs: title, flash, CSRF token and read-only flag.
func (ui *UIController) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CSRFField"] = auth.CSRFField(c)
	data["CSRFToken"] = auth.CSRFToken(c)
	data["ReadOnly"] = c.GetBool(readonly.ContextKey)
	if ui.sessions != nil {
		data["Flash"] = ui.sessions.PopFlash(c.Request)
	}
	c.HTML(status, name, data)
}

func (ui *UIController) renderError(c *gin.Context, status int) {
	ui.render(c, status, "error", http.StatusText(status), gin.H{"StatusCode": http.StatusText(status)})
}

// renderStoreError maps catalog errors like respondStoreError does for JSON.
func (ui *UIController) renderStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, quotes.ErrInvalidPage):
		ui.renderError(c, http.StatusBadRequest)
	case errors.Is(err, quotes.ErrNotFound):
		ui.renderError(c, http.StatusNotFound)
	default:
		requestLogger(c).Error("internal error", "op", context, "error", err)
		ui.renderError(c, http.StatusInternalServerError)
	}
}

func (ui *UIController) pagination(c *gin.Context) (int, int, bool) {
	page, size, err := ui.limits.pagination(c)
	if err != nil {
		ui.renderError(c, http.StatusBadRequest)
		return 0, 0, false
	}
	return page, size, true
}

func (ui *UIController) id(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		ui.renderError(c, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (ui *UIController) flash(c *gin.Context, message string) {
	if ui.sessions != nil {
		ui.sessions.SetFlash(c.Request, message)
	}
}

// redirectAfterDelete sends htmx to target with HX-Redirect and everyone else with a 303.
func redirectAfterDelete(c *gin.Context, target string) {
	if isHTMXRequest(c) {
		c.Header("HX-Redirect", target)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// GET /
func (ui *UIController) Root(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/quotes")
}

// QuotesPage renders one page of quotes; an empty catalog is a 404
// GET /quotes
func (ui *UIController) QuotesPage(c *gin.Context) {
	page, size, ok := ui.pagination(c)
	if !ok {
		return
	}

	result, err := ui.store.GetQuotesPage(c.Request.Context(), page, size)
	if err != nil {
		ui.renderStoreError(c, err, "get quotes page")
		return
	}

	ui.render(c, http.StatusOK, "quotes", "Quotes", gin.H{"Page": result})
}

// GET /submitQuote
func (ui *UIController) QuoteForm(c *gin.Context) {
	ui.render(c, http.StatusOK, "quote_form", "Submit a quote", gin.H{"Form": quoteForm{}})
}

// SubmitQuote creates a quote from the form and redirects to the listing
// POST /quotes
func (ui *UIController) SubmitQuote(c *gin.Context) {
	var form quoteForm
	if err := c.ShouldBind(&form); err != nil {
		ui.render(c, http.StatusBadRequest, "quote_form", "Submit a quote", gin.H{
			"Form":  form,
			"Error": "Quote and author are required.",
		})
		return
	}

	quote, err := ui.store.CreateQuote(c.Request.Context(), form.toCreateDTO())
	if err != nil {
		ui.renderStoreError(c, err, "create quote")
		return
	}
	requestLogger(c).Info("quote submitted", "quote_id", quote.ID, "author_id", quote.Author.ID)

	ui.flash(c, "Quote added.")
	c.Redirect(http.StatusSeeOther, "/quotes")
}

// GET /quotes/:id
func (ui *UIController) QuotePage(c *gin.Context) {
	id, ok := ui.id(c)
	if !ok {
		return
	}

	quote, err := ui.store.GetQuote(c.Request.Context(), id)
	if err != nil {
		ui.renderStoreError(c, err, "get quote")
		return
	}

	ui.render(c, http.StatusOK, "quote", "Quote", gin.H{"Quote": quote})
}

// DELETE /quotes/:id
func (ui *UIController) DeleteQuote(c *gin.Context) {
	id, ok := ui.id(c)
	if !ok {
		return
	}

	if err := ui.store.DeleteQuote(c.Request.Context(), id); err != nil {
		ui.renderStoreError(c, err, "delete quote")
		return
	}

	ui.flash(c, "Quote deleted.")
	redirectAfterDelete(c, "/quotes")
}

// TagsPage renders an empty list instead of a 404 when there are no tags
// GET /tags
func (ui *UIController) TagsPage(c *gin.Context) {
	page, size, ok := ui.pagination(c)
	if !ok {
		return
	}

	result, err := ui.store.GetTagsPage(c.Request.Context(), page, size)
	if errors.Is(err, quotes.ErrEmptyPage) {
		result, err = &entities.Page[entities.TagDTO]{Number: page, Size: size}, nil
	}
	if err != nil {
		ui.renderStoreError(c, err, "get tags page")
		return
	}

	ui.render(c, http.StatusOK, "tags", "Tags", gin.H{"Page": result})
}

// GET /tags/:id
func (ui *UIController) TagPage(c *gin.Context) {
	id, ok := ui.id(c)
	if !ok {
		return
	}
	page, size, ok := ui.pagination(c)
	if !ok {
		return
	}

	result, err := ui.store.GetTagWithQuotes(c.Request.Context(), id, page, size)
	if err != nil {
		ui.renderStoreError(c, err, "get tag with quotes")
		return
	}

	ui.render(c, http.StatusOK, "tag", "Tag "+result.Tag.Tag, gin.H{
		"Tag":  result.Tag,
		"Page": result.Quotes,
	})
}

// DELETE /tags/:id
func (ui *UIController) DeleteTag(c *gin.Context) {
	id, ok := ui.id(c)
	if !ok {
		return
	}

	if err := ui.store.DeleteTag(c.Request.Context(), id); err != nil {
		ui.renderStoreError(c, err, "delete tag")
		return
	}

	ui.flash(c, "Tag deleted.")
	redirectAfterDelete(c, "/tags")
}

// AuthorsPage renders an empty list instead of a 404 when there are no authors
// GET /authors
func (ui *UIController) AuthorsPage(c *gin.Context) {
	page, size, ok := ui.pagination(c)
	if !ok {
		return
	}

	result, err := ui.store.GetAuthorsPage(c.Request.Context(), page, size)
	if errors.Is(err, quotes.ErrEmptyPage) {
		result, err = &entities.Page[entities.AuthorDTO]{Number: page, Size: size}, nil
	}
	if err != nil {
		ui.renderStoreError(c, err, "get authors page")
		return
	}

	ui.render(c, http.StatusOK, "authors", "Authors", gin.H{"Page": result})
}

// GET /authors/:id
func (ui *UIController) AuthorPage(c *gin.Context) {
	id, ok := ui.id(c)
	if !ok {
		return
	}
	page, size, ok := ui.pagination(c)
	if !ok {
		return
	}

	result, err := ui.store.GetAuthorWithQuotes(c.Request.Context(), id, page, size)
	if err != nil {
		ui.renderStoreError(c, err, "get author with quotes")
		return
	}

	ui.render(c, http.StatusOK, "author", result.Author.Name, gin.H{
		"Author": result.Author,
		"Page":   result.Quotes,
	})
}
