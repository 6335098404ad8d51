// Package handler contains HTTP request handlers — the glue between HTTP
// and the lookup/theme services. Handlers parse requests, call the service
// layer, and write responses; they hold no business logic of their own.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/devfinder/internal/lookup"
	"github.com/sakif/devfinder/internal/model"
)

// LookupHandler exposes the lookup coordinators over HTTP.
type LookupHandler struct {
	svc    *lookup.Service
	logger *slog.Logger
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *lookup.Service, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, logger: logger}
}

// RequestState is the JSON shape of one request record. Data is null while
// absent; error is omitted while empty — mirroring the tri-state the
// coordinators maintain.
type RequestState[T any] struct {
	Data    *T     `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// StateResponse is the combined snapshot of both records.
type StateResponse struct {
	Profile RequestState[model.Profile] `json:"profile"`
	Repos   RequestState[[]model.Repo]  `json:"repos"`
}

// snapshot builds a StateResponse from the service's current projections.
// Each record is read as one consistent snapshot — never field by field.
func (h *LookupHandler) snapshot() StateResponse {
	profile := h.svc.ProfileState()
	repos := h.svc.ReposState()
	return StateResponse{
		Profile: RequestState[model.Profile]{
			Data:    profile.Data,
			Loading: profile.Loading,
			Error:   profile.Err,
		},
		Repos: RequestState[[]model.Repo]{
			Data:    repos.Data,
			Loading: repos.Loading,
			Error:   repos.Err,
		},
	}
}

// HandleSearch runs a full search for the given username and returns the
// settled snapshot.
//
// HTTP: GET /api/users/{username}
//
// Note the 200 even for a failed lookup: the coordinators convert every
// failure into settled state, and this endpoint reports that state. Only
// problems OUTSIDE the lookup lifecycle (malformed routes etc.) produce
// error statuses here.
func (h *LookupHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	// Search blocks until both fetch paths settle. Empty/whitespace input
	// short-circuits inside the service with a validation error in the
	// profile record — same contract as any other failure.
	h.svc.Search(r.Context(), username)

	writeJSON(w, http.StatusOK, h.snapshot())
}

// HandleState returns the current snapshot without triggering a fetch.
//
// HTTP: GET /api/state
func (h *LookupHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

// HandleClear resets both records to their initial state.
//
// HTTP: DELETE /api/state
func (h *LookupHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}
