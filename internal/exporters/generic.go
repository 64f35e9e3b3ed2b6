package exporters

import (
	"context"
	"errors"

	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entities"
)

// exportPageSize is how many quotes are read per page while exporting.
const exportPageSize = 100

type QuoteReader interface {
	GetQuotesPage(ctx context.Context, page, size int) (*entities.Page[entities.QuoteDTO], error)
}

type CatalogExporter interface {
	Export(ctx context.Context, reader QuoteReader) (ExportResult, error)
}

type ExportResult struct {
	AuthorsProcessed int `json:"authors_processed"`
	QuotesProcessed  int `json:"quotes_processed"`
	FilesWritten     int `json:"files_written"`
}

// allQuotes pages through the whole catalog in author order. An empty
// catalog yields no quotes and no error.
func allQuotes(ctx context.Context, reader QuoteReader) ([]entities.QuoteDTO, error) {
	var all []entities.QuoteDTO
	for page := 1; ; page++ {
		result, err := reader.GetQuotesPage(ctx, page, exportPageSize)
		if errors.Is(err, quotes.ErrEmptyPage) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if !result.HasNext() {
			return all, nil
		}
	}
}

// byAuthor splits quotes ordered by author into per-author runs.
func byAuthor(all []entities.QuoteDTO) [][]entities.QuoteDTO {
	var groups [][]entities.QuoteDTO
	for i, quote := range all {
		if i == 0 || quote.Author.ID != all[i-1].Author.ID {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], quote)
	}
	return groups
}
