package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes written by middleware itself. Handler errors carry their
// apperror code instead.
const (
	ErrorCodeUnauthorized    = "UNAUTHORIZED"
	ErrorCodeValidation      = "VALIDATION_FAILED"
	ErrorCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// InternalServerErrorMessage is the only body a 500 ever carries.
const InternalServerErrorMessage = "Internal Server Error"

// WriteJSONError writes a JSON error response with consistent format.
// This matches the format used by BaseHandler in the REST layer.
func WriteJSONError(w http.ResponseWriter, code string, message string, status int) {
	WriteJSONErrorWithDetails(w, code, message, status, nil)
}

// WriteJSONErrorWithDetails adds extra top-level fields to the error body.
func WriteJSONErrorWithDetails(w http.ResponseWriter, code string, message string, status int, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"error":   code,
		"message": message,
	}
	for k, v := range details {
		errorResp[k] = v
	}

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(errorResp)
}

// WriteInternalError writes the fixed 500 body.
func WriteInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": InternalServerErrorMessage})
}
