package exporters

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace runs, including newlines and tabs
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips characters that are invalid in filenames or
// meaningful to Obsidian links (hashtags, brackets).
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceRuns.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Leave room for the extension under the usual 255 byte limit
	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}

	if filename == "" {
		filename = "Untitled"
	}
	return filename
}

// noteFilename turns a stored (lowercased) author name into a note file name.
func noteFilename(author string) string {
	words := strings.Fields(author)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return SanitizeFilename(strings.Join(words, " ")) + ".md"
}
