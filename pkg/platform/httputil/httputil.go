// Package httputil holds the shared HTTP response helpers: JSON encoding
// and the single domain-error to status-code mapping.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "refdata/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto an HTTP status and JSON body.
// Internal errors keep their detail server-side.
func WriteError(w http.ResponseWriter, err error) {
	var dErr *dErrors.Error
	if !errors.As(err, &dErr) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
		return
	}

	switch dErr.Code {
	case dErrors.CodeValidation:
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "validation_failed",
			ErrorDescription: dErr.Message,
			Fields:           dErr.Fields,
		})
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "bad_request",
			ErrorDescription: dErr.Message,
		})
	case dErrors.CodeUnauthorized:
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: dErr.Message,
		})
	case dErrors.CodeNotFound:
		WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: dErr.Message,
		})
	case dErrors.CodeConflict:
		WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "conflict",
			ErrorDescription: dErr.Message,
			Fields:           dErr.Fields,
		})
	default:
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}
}

// Decode parses the JSON request body into T. A malformed body writes a
// 400 and returns false.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "malformed request body", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return nil, false
	}
	return &req, true
}
