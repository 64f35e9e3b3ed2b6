package exporters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/quotes/internal/entities"
	"github.com/mrlokans/quotes/internal/importers"
)

// FileExporter writes the catalog as one JSON or YAML file in the seed
// format, so the output can be imported again with `quotes seed`.
type FileExporter struct {
	Path string
}

func NewFileExporter(path string) *FileExporter {
	return &FileExporter{Path: path}
}

func (e *FileExporter) Export(ctx context.Context, reader QuoteReader) (ExportResult, error) {
	all, err := allQuotes(ctx, reader)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	records := make([]importers.RawQuote, 0, len(all))
	for _, quote := range all {
		records = append(records, toRecord(quote))
	}

	data, err := encodeRecords(e.Path, records)
	if err != nil {
		return ExportResult{}, err
	}
	if err := os.WriteFile(e.Path, data, 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write %s: %w", e.Path, err)
	}

	return ExportResult{
		AuthorsProcessed: len(byAuthor(all)),
		QuotesProcessed:  len(all),
		FilesWritten:     1,
	}, nil
}

func toRecord(quote entities.QuoteDTO) importers.RawQuote {
	tags := make([]string, 0, len(quote.RelatedTags))
	for _, tag := range quote.RelatedTags {
		tags = append(tags, tag.Tag)
	}
	return importers.RawQuote{
		Quote:       quote.Quote,
		AuthorName:  quote.Author.Name,
		RelatedTags: tags,
	}
}

func encodeRecords(path string, records []importers.RawQuote) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.MarshalIndent(records, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(records)
	default:
		return nil, fmt.Errorf("unsupported export file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}
