package importers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrlokans/quotes/internal/entities"
)

// RawQuote is one record from an import source.
type RawQuote struct {
	Quote       string   `json:"quote" yaml:"quote"`
	AuthorName  string   `json:"author_name" yaml:"author_name"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	RelatedTags []string `json:"related_tags" yaml:"related_tags"`
}

// Author returns the author name, falling back to the legacy "name" key.
func (q RawQuote) Author() string {
	if q.AuthorName != "" {
		return q.AuthorName
	}
	return q.Name
}

// Converter produces raw quotes from an import source.
type Converter interface {
	Convert() ([]RawQuote, error)
}

// QuoteCreator persists a single quote.
type QuoteCreator interface {
	CreateQuote(ctx context.Context, in entities.QuoteCreateDTO) (*entities.QuoteDTO, error)
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Pipeline feeds converted records to the store one by one. A failing record
// is counted and reported without stopping the rest of the import.
type Pipeline struct {
	store  QuoteCreator
	logger *slog.Logger
}

func NewPipeline(store QuoteCreator, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: store, logger: logger}
}

func (p *Pipeline) Import(ctx context.Context, converter Converter) (ImportResult, error) {
	records, err := converter.Convert()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read quotes: %w", err)
	}

	var result ImportResult
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		in, err := toCreateDTO(record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i, err))
			continue
		}

		if _, err := p.store.CreateQuote(ctx, in); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i, err))
			p.logger.Warn("failed to import quote", "record", i, "error", err)
			continue
		}
		result.Imported++
	}

	p.logger.Info("quotes imported", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

func toCreateDTO(record RawQuote) (entities.QuoteCreateDTO, error) {
	if strings.TrimSpace(record.Quote) == "" {
		return entities.QuoteCreateDTO{}, fmt.Errorf("quote text is empty")
	}
	if strings.TrimSpace(record.Author()) == "" {
		return entities.QuoteCreateDTO{}, fmt.Errorf("author name is empty")
	}

	tags := make([]string, 0, len(record.RelatedTags))
	for _, tag := range record.RelatedTags {
		if strings.TrimSpace(tag) != "" {
			tags = append(tags, tag)
		}
	}

	return entities.QuoteCreateDTO{
		Quote:       record.Quote,
		AuthorName:  record.Author(),
		RelatedTags: tags,
	}, nil
}
