package exporters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/quotes/internal/entities"
)

// MarkdownExporter writes one Obsidian-compatible note per author into Dir.
type MarkdownExporter struct {
	Dir string
	now func() time.Time
}

func NewMarkdownExporter(dir string) *MarkdownExporter {
	return &MarkdownExporter{Dir: dir, now: time.Now}
}

func (e *MarkdownExporter) Export(ctx context.Context, reader QuoteReader) (ExportResult, error) {
	all, err := allQuotes(ctx, reader)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	var result ExportResult
	for _, group := range byAuthor(all) {
		author := group[0].Author
		path := filepath.Join(e.Dir, noteFilename(author.Name))
		content := GenerateAuthorMarkdown(author, group, e.now())
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.AuthorsProcessed++
		result.QuotesProcessed += len(group)
		result.FilesWritten++
	}
	return result, nil
}

// GenerateAuthorMarkdown renders an author's quotes with a frontmatter
// listing every tag used by them.
func GenerateAuthorMarkdown(author entities.AuthorDTO, quotes []entities.QuoteDTO, exportedAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: quotes\n")
	fmt.Fprintf(&builder, "exported_at: %s\n", exportedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "author: \"%s\"\n", strings.ReplaceAll(author.Name, "\"", "\\\""))
	fmt.Fprintf(&builder, "tags: [%s]\n", strings.Join(authorTags(quotes), ", "))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "## Quotes\n\n")

	for _, quote := range quotes {
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(quote.Quote, "\n", "\n> "))
		if len(quote.RelatedTags) > 0 {
			tags := make([]string, 0, len(quote.RelatedTags))
			for _, tag := range quote.RelatedTags {
				tags = append(tags, "#"+strings.ReplaceAll(tag.Tag, " ", "-"))
			}
			fmt.Fprintf(&builder, "%s\n\n", strings.Join(tags, " "))
		}
	}

	return builder.String()
}

// authorTags lists distinct tags in first-seen order.
func authorTags(quotes []entities.QuoteDTO) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, quote := range quotes {
		for _, tag := range quote.RelatedTags {
			if !seen[tag.Tag] {
				seen[tag.Tag] = true
				tags = append(tags, tag.Tag)
			}
		}
	}
	return tags
}
