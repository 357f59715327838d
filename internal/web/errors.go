package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marcus/ticklist/internal/todo"
)

// Error code constants for structured error responses.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternal       = "internal"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeSignupDisabled = "signup_disabled"
)

// APIError represents a structured error returned by JSON endpoints.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError for JSON serialization.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: APIError{Code: code, Message: message},
	}); err != nil {
		slog.Error("write error response", "err", err)
	}
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write json response", "err", err)
	}
}

// mutationResult is the fixed response envelope of the mutation endpoint.
type mutationResult struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// writeMutationOK reports a successful mutation to a fetch-style caller.
func writeMutationOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, mutationResult{Type: "success"})
}

// writeMutationErr reports a failed mutation to a fetch-style caller.
// The HTTP status tracks the error class but the body shape is fixed.
func writeMutationErr(w http.ResponseWriter, err error) {
	status := mutationStatus(err)
	msg := err.Error()
	if status >= 500 {
		msg = "internal error"
	}
	writeJSON(w, status, mutationResult{Type: "error", Error: msg})
}

// mutationStatus maps a mutation error to an HTTP status code.
func mutationStatus(err error) int {
	switch {
	case todo.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, todo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, todo.ErrUnknownIntent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
