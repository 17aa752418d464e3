package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body every endpoint returns.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, message string) {
	write(w, ErrorResponse{Status: status, Code: code, Message: message})
}

// RespondValidationError writes a 400 naming the offending field
func RespondValidationError(w http.ResponseWriter, code, message, field string) {
	write(w, ErrorResponse{Status: http.StatusBadRequest, Code: code, Message: message, Field: field})
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondUnprocessable writes a 422 for store operations that failed on valid input
func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, ErrCodeUnprocessable, message)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// RespondServiceUnavailable writes a service unavailable error response
func RespondServiceUnavailable(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusServiceUnavailable, code, message)
}

func write(w http.ResponseWriter, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	_ = json.NewEncoder(w).Encode(body)
}
