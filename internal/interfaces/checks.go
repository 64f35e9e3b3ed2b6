package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/exporters"
	"github.com/mrlokans/quotes/internal/http"
	"github.com/mrlokans/quotes/internal/importers"
	"github.com/mrlokans/quotes/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.CatalogStore = (*quotes.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ tasks.AssociationSweeper = (*quotes.Repository)(nil)

// =============================================================================
// Import / Export
// =============================================================================

var _ importers.QuoteCreator = (*quotes.Repository)(nil)
var _ importers.Converter = importers.JSONConverter{}
var _ importers.Converter = importers.YAMLConverter{}
var _ exporters.QuoteReader = (*quotes.Repository)(nil)
var _ exporters.CatalogExporter = (*exporters.FileExporter)(nil)
var _ exporters.CatalogExporter = (*exporters.MarkdownExporter)(nil)
