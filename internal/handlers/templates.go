package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/swaglabs/shopcheck/internal/models"
	"github.com/swaglabs/shopcheck/internal/selectors"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"price": models.FormatCents,
	"slug":  selectors.Slug,
}

// parsePage parses the shared layout together with one page template
func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// pageData is what every page template receives
type pageData struct {
	// Title is shown in the secondary header of signed-in pages.
	Title     string
	LoggedIn  bool
	CartCount int
	Error     string
	Page      any
}

// render executes the layout into a buffer first so a template error
// never leaves a half-written page.
func render(w http.ResponseWriter, logger *zap.Logger, tmpl *template.Template, status int, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("Error rendering template", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
