package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotes/internal/entities"
)

// Each controller depends only on the slice of the catalog it uses.
// *quotes.Repository satisfies all of them.

type QuoteStore interface {
	CreateQuote(ctx context.Context, in entities.QuoteCreateDTO) (*entities.QuoteDTO, error)
	GetQuote(ctx context.Context, id uint) (*entities.QuoteDTO, error)
	GetQuotesPage(ctx context.Context, page, size int) (*entities.Page[entities.QuoteDTO], error)
	UpdateQuoteTag(ctx context.Context, quoteID uint, tag string) (*entities.QuoteDTO, error)
	DeleteQuote(ctx context.Context, id uint) error
}

type TagStore interface {
	GetTagsPage(ctx context.Context, page, size int) (*entities.Page[entities.TagDTO], error)
	GetTagWithQuotes(ctx context.Context, tagID uint, page, size int) (*entities.TagWithQuotes, error)
	DeleteTag(ctx context.Context, id uint) error
}

type AuthorStore interface {
	GetAuthorsPage(ctx context.Context, page, size int) (*entities.Page[entities.AuthorDTO], error)
	GetAuthorWithQuotes(ctx context.Context, authorID uint, page, size int) (*entities.AuthorWithQuotes, error)
}

type CatalogCounter interface {
	Counts(ctx context.Context) (entities.CatalogCounts, error)
}

// CatalogStore is everything the router wires.
type CatalogStore interface {
	QuoteStore
	TagStore
	AuthorStore
	CatalogCounter
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TaskQueue is the background task client used by the admin endpoints.
type TaskQueue interface {
	EnqueueCleanup() (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
