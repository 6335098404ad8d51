package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/theme"
)

// ThemeHandler exposes the theme preference service over HTTP.
type ThemeHandler struct {
	svc    *theme.Service
	doc    *theme.Document
	logger *slog.Logger
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(svc *theme.Service, doc *theme.Document, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{svc: svc, doc: doc, logger: logger}
}

// ThemeResponse reports the current preference plus the marker class the
// frontend puts on the document root.
type ThemeResponse struct {
	Theme       theme.Theme `json:"theme"`
	MarkerClass string      `json:"markerClass"`
}

func (h *ThemeHandler) current() ThemeResponse {
	return ThemeResponse{
		Theme:       h.svc.Current(),
		MarkerClass: h.doc.Class(),
	}
}

// HandleGet returns the current theme.
//
// HTTP: GET /api/theme
func (h *ThemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.current())
}

// HandleSet sets the theme to the requested value.
//
// HTTP: POST /api/theme
// REQUEST BODY: {"theme": "dark"} or {"theme": "light"}
//
// The service's Set is unconditional; validating the literal here keeps
// garbage out of the cell at the one boundary where untyped input arrives.
func (h *ThemeHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme theme.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("invalid theme JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("theme", "invalid JSON body"))
		return
	}
	if !body.Theme.Valid() {
		writeError(w, apperror.ValidationFailed("theme", `theme must be "dark" or "light"`))
		return
	}

	h.svc.Set(body.Theme)
	writeJSON(w, http.StatusOK, h.current())
}

// HandleToggle flips the theme to its complement.
//
// HTTP: POST /api/theme/toggle
func (h *ThemeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	h.svc.Toggle()
	writeJSON(w, http.StatusOK, h.current())
}
