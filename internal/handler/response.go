package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from our API has the same shape:
//   {"error": "validation_error", "message": "username is required"}
//
// This makes it easy for the frontend to parse errors — it always knows
// what fields to expect, regardless of whether it's a 400, 404, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/devfinder/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code must be set BEFORE writing the body. Once
// Encode() calls w.Write(), the headers are sent and later changes are
// silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and
// sends it. The service layers return apperror values; this is the single
// place they turn into HTTP.
//
// errors.Is() walks the whole error chain (via Unwrap()), so wrapping with
// fmt.Errorf("...: %w", err) anywhere upstream doesn't break the mapping.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusTooManyRequests // 429
			errorType = "rate_limited"
		case errors.Is(err, apperror.ErrUnreachable):
			status = http.StatusBadGateway // 502 — the upstream was unreachable
			errorType = "upstream_unreachable"
		case errors.Is(err, apperror.ErrRemote):
			status = http.StatusBadGateway
			errorType = "upstream_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — return a generic 500. Never expose internal error
	// details to the client; the raw message might contain paths or SQL.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
