// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lumeo/lumeo/internal/handler/dto"
)

// Error codes returned in response envelopes.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// RootHandler serves service information at the API root.
type RootHandler struct {
	version string
}

// NewRootHandler creates a new RootHandler.
func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

// Info is a service info endpoint.
// GET /
func (h *RootHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{
		"service": "lumeo-api",
		"version": h.version,
	})
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeInvalidInput, "Method not allowed", nil)
}

// writeData writes a success envelope with the given status code.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dto.Envelope{OK: true, Data: data})
}

// writeError writes a failure envelope. details carries per-field
// validation issues and is omitted when nil.
func writeError(w http.ResponseWriter, status int, code, message string, details []dto.FieldIssue) {
	writeJSON(w, status, dto.Envelope{
		OK: false,
		Error: &dto.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing left to do
		_ = err
	}
}
