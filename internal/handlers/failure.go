package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// NotFoundHandler renders the error page for unknown paths and products
type NotFoundHandler struct {
	template *template.Template
	logger   *zap.Logger
}

// NewNotFoundHandler creates a new not-found handler
func NewNotFoundHandler(logger *zap.Logger) (*NotFoundHandler, error) {
	tmpl, err := parsePage("not_found.html")
	if err != nil {
		return nil, err
	}

	return &NotFoundHandler{
		template: tmpl,
		logger:   logger,
	}, nil
}

// ServeHTTP responds with 404 and a short explanation
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Page not found", zap.String("path", r.URL.Path))
	render(w, h.logger, h.template, http.StatusNotFound, pageData{
		Error: "there is no page at " + r.URL.Path,
	})
}
