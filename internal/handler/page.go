package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/devfinder/internal/theme"
)

// PageHandler serves the lookup page.
// It holds parsed templates so we don't re-parse them on every request,
// and the theme document so the page renders with the right marker class
// already on the root element (no flash of the wrong theme).
type PageHandler struct {
	templates *template.Template
	doc       *theme.Document
	logger    *slog.Logger
}

// NewPageHandler creates a PageHandler and parses the HTML templates.
//
// TEMPLATE COMPOSITION:
// base.html defines the page shell with a {{template "content" .}}
// placeholder; lookup.html fills it via {{define "content"}}. Parsing them
// together lets them reference each other.
func NewPageHandler(templateDir string, doc *theme.Document, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "lookup.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		doc:       doc,
		logger:    logger,
	}, nil
}

// HandleIndex serves the lookup page.
//
// HTTP: GET /
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":      "devfinder — GitHub user lookup",
		"ThemeClass": h.doc.Class(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
