package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mehdi559/poe/internal/apperror"
	"github.com/mehdi559/poe/pkg/datetime"
)

// ErrorResponse represents a JSON error response body. Fields carries
// per-field validation messages when the request payload was rejected.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto the HTTP response.
// Validation failures keep their per-field messages; anything without a
// known status code becomes a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	status := apperror.GetStatusCode(err)

	var verrs apperror.ValidationErrors
	if errors.As(err, &verrs) {
		respondJSON(w, status, ErrorResponse{Error: "validation failed", Fields: verrs})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		respondJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	if status == http.StatusInternalServerError {
		respondError(w, status, "internal server error")
		return
	}
	respondError(w, status, err.Error())
}

// urlID parses the {id} route parameter as a UUID.
func urlID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// queryMonth parses the month query parameter (YYYY-MM), falling back to
// the month containing today when absent.
func queryMonth(r *http.Request, today datetime.Date) (datetime.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return today.Month(), nil
	}
	return datetime.ParseMonth(raw)
}
