package http

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotes/internal/http/templates"
)

// pagerView is what the "pagination" template renders.
type pagerView struct {
	Number int
	Total  int64
	Prev   string
	Next   string
}

func pager(number, size int, totalPages int64, base string) pagerView {
	view := pagerView{Number: number, Total: totalPages}
	if number > 1 {
		view.Prev = fmt.Sprintf("%s?page=%d&page_size=%d", base, number-1, size)
	}
	if int64(number) < totalPages {
		view.Next = fmt.Sprintf("%s?page=%d&page_size=%d", base, number+1, size)
	}
	return view
}

var templateFuncs = template.FuncMap{
	"pager": pager,
}

// LoadTemplates parses the embedded pages, or the *.html files in dir when
// dir is set so the pages can be edited without rebuilding.
func LoadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)
	if dir == "" {
		return tmpl.ParseFS(templates.FS, "*.html")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("templates path: %w", err)
	}
	return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
}
