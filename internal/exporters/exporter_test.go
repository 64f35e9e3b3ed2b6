package exporters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entities"
	"github.com/mrlokans/quotes/internal/importers"
)

// pagedReader serves a fixed list of quotes in pages like the repository does.
type pagedReader struct {
	quotes []entities.QuoteDTO
	err    error
	calls  int
}

func (r *pagedReader) GetQuotesPage(_ context.Context, page, size int) (*entities.Page[entities.QuoteDTO], error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	start := (page - 1) * size
	if start >= len(r.quotes) {
		return nil, quotes.ErrEmptyPage
	}
	end := min(start+size, len(r.quotes))
	total := int64(len(r.quotes))
	return &entities.Page[entities.QuoteDTO]{
		Items:      r.quotes[start:end],
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: (total + int64(size) - 1) / int64(size),
	}, nil
}

func quote(id uint, text string, authorID uint, author string, tags ...string) entities.QuoteDTO {
	related := make([]entities.TagDTO, 0, len(tags))
	for i, tag := range tags {
		related = append(related, entities.TagDTO{ID: uint(i + 1), Tag: tag})
	}
	return entities.QuoteDTO{
		ID:          id,
		Quote:       text,
		Author:      entities.AuthorDTO{ID: authorID, Name: author},
		RelatedTags: related,
	}
}

func sampleCatalog() []entities.QuoteDTO {
	return []entities.QuoteDTO{
		quote(2, "Veni, vidi, vici", 2, "julius caesar", "latin"),
		quote(1, "We suffer more in imagination", 1, "seneca", "stoicism"),
		quote(3, "Luck is what happens\nwhen preparation meets opportunity", 1, "seneca", "stoicism", "luck"),
	}
}

func TestAllQuotes_PagesThroughCatalog(t *testing.T) {
	many := make([]entities.QuoteDTO, 0, exportPageSize+5)
	for i := 0; i < exportPageSize+5; i++ {
		many = append(many, quote(uint(i+1), "q", 1, "a"))
	}
	reader := &pagedReader{quotes: many}

	all, err := allQuotes(context.Background(), reader)
	require.NoError(t, err)
	assert.Len(t, all, exportPageSize+5)
	assert.Equal(t, 2, reader.calls)
}

func TestAllQuotes_EmptyCatalog(t *testing.T) {
	all, err := allQuotes(context.Background(), &pagedReader{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAllQuotes_StorageError(t *testing.T) {
	_, err := allQuotes(context.Background(), &pagedReader{err: errors.New("disk I/O error")})
	assert.Error(t, err)
}

func TestByAuthor(t *testing.T) {
	groups := byAuthor(sampleCatalog())
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 2)
	assert.Nil(t, byAuthor(nil))
}

func TestFileExporter_RoundTripsThroughImporter(t *testing.T) {
	for _, name := range []string{"catalog.json", "catalog.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			result, err := NewFileExporter(path).Export(context.Background(), &pagedReader{quotes: sampleCatalog()})
			require.NoError(t, err)
			assert.Equal(t, ExportResult{AuthorsProcessed: 2, QuotesProcessed: 3, FilesWritten: 1}, result)

			converter, err := importers.ConverterForFile(path)
			require.NoError(t, err)
			records, err := converter.Convert()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "julius caesar", records[0].Author())
			assert.Equal(t, []string{"stoicism", "luck"}, records[2].RelatedTags)
			assert.Equal(t, sampleCatalog()[2].Quote, records[2].Quote)
		})
	}
}

func TestFileExporter_RejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")

	_, err := NewFileExporter(path).Export(context.Background(), &pagedReader{quotes: sampleCatalog()})
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestMarkdownExporter_WritesOneNotePerAuthor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	exporter := NewMarkdownExporter(dir)
	exporter.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	result, err := exporter.Export(context.Background(), &pagedReader{quotes: sampleCatalog()})
	require.NoError(t, err)
	assert.Equal(t, 2, result.AuthorsProcessed)
	assert.Equal(t, 3, result.QuotesProcessed)
	assert.Equal(t, 2, result.FilesWritten)

	content, err := os.ReadFile(filepath.Join(dir, "Seneca.md"))
	require.NoError(t, err)
	note := string(content)
	assert.Contains(t, note, `author: "seneca"`)
	assert.Contains(t, note, "exported_at: 2024-06-15")
	assert.Contains(t, note, "tags: [stoicism, luck]")
	assert.Contains(t, note, "> Luck is what happens\n> when preparation meets opportunity")
	assert.Contains(t, note, "#stoicism #luck")

	assert.FileExists(t, filepath.Join(dir, "Julius Caesar.md"))
}

func TestGenerateAuthorMarkdown_EscapesQuotesInName(t *testing.T) {
	md := GenerateAuthorMarkdown(entities.AuthorDTO{Name: `dwayne "the rock" johnson`}, nil, time.Now())
	assert.Contains(t, md, `author: "dwayne \"the rock\" johnson"`)
	assert.True(t, strings.HasPrefix(md, "---\n"))
}
