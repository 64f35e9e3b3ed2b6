package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// JSON routes live under /api, HTML pages at the root.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	RegisterValidations()

	router := gin.New()
	router.Use(RequestID(cfg.Logger))
	router.Use(RequestLogger())
	router.Use(Recovery())

	metrics := NewMetrics(cfg.Store, cfg.Logger)
	router.Use(metrics.Middleware())

	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())
	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}
	router.Use(CORS(cfg.CORSOrigins))

	tmpl, err := LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	admin := func(c *gin.Context) { c.Next() }
	if cfg.AdminGuard != nil {
		admin = cfg.AdminGuard.Handler()
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Store, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	quotesController := NewQuotesController(cfg.Store, cfg.Pagination)
	tagsController := NewTagsController(cfg.Store, cfg.Pagination)
	authorsController := NewAuthorsController(cfg.Store, cfg.Pagination)
	tasksController := NewTasksController(cfg.TaskQueue)

	api := router.Group("/api")
	{
		api.GET("/quotes", quotesController.GetQuotes)
		api.POST("/quotes", quotesController.CreateQuote)
		api.GET("/quotes/:id", quotesController.GetQuote)
		api.PATCH("/quotes/:id", quotesController.AddTag)
		api.DELETE("/quotes/:id", admin, quotesController.DeleteQuote)

		api.GET("/tags", tagsController.GetTags)
		api.GET("/tags/:id", tagsController.GetTag)
		api.DELETE("/tags/:id", admin, tagsController.DeleteTag)

		api.GET("/authors", authorsController.GetAuthors)
		api.GET("/authors/:id", authorsController.GetAuthor)

		api.POST("/admin/cleanup", admin, tasksController.Cleanup)
		api.GET("/admin/tasks/:id", admin, tasksController.GetTaskStatus)
	}

	// UI routes
	// CSRF must run before session so that session context is preserved
	ui := NewUIController(cfg.Store, cfg.SessionManager, cfg.Pagination)
	pages := router.Group("/")
	if len(cfg.CSRFSecret) > 0 {
		pages.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		pages.Use(cfg.SessionManager.LoadAndSave())
	}
	{
		pages.GET("/", ui.Root)
		pages.GET("/quotes", ui.QuotesPage)
		pages.POST("/quotes", ui.SubmitQuote)
		pages.GET("/submitQuote", ui.QuoteForm)
		pages.GET("/quotes/:id", ui.QuotePage)
		pages.DELETE("/quotes/:id", admin, ui.DeleteQuote)
		pages.GET("/tags", ui.TagsPage)
		pages.GET("/tags/:id", ui.TagPage)
		pages.DELETE("/tags/:id", admin, ui.DeleteTag)
		pages.GET("/authors", ui.AuthorsPage)
		pages.GET("/authors/:id", ui.AuthorPage)
	}

	return router, nil
}
