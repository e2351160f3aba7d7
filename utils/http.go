package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type statusError struct {
	code           string
	defaultMessage string
}

// statusErrors maps a status to its machine-readable code and the message
// used when the caller passes none.
var statusErrors = map[int]statusError{
	http.StatusBadRequest:          {"bad_request", "Bad request"},
	http.StatusUnauthorized:        {"unauthorized", "Authentication required"},
	http.StatusForbidden:           {"forbidden", "Access forbidden"},
	http.StatusNotFound:            {"not_found", "Resource not found"},
	http.StatusMethodNotAllowed:    {"method_not_allowed", "Method not allowed"},
	http.StatusConflict:            {"conflict", "Conflict"},
	http.StatusInternalServerError: {"internal_error", "Internal server error"},
	http.StatusServiceUnavailable:  {"service_unavailable", "Service temporarily unavailable"},
}

// WriteJSON writes data as JSON with the given status code. The body is
// encoded before the header is sent, so an encoding failure becomes a 500
// instead of a truncated response.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if data == nil {
		w.WriteHeader(status)
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"internal_error"}`)
		return err
	}

	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// WriteOK writes a 200 with data in the success envelope
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// WriteCreated writes a 201 with data in the success envelope
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

// WriteMessage writes a 200 carrying only a human-readable message
func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Message: message})
}

// WriteText writes a plain text body
func WriteText(w http.ResponseWriter, status int, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, err := io.WriteString(w, body)
	return err
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteBadRequest(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return WriteError(w, http.StatusBadRequest, message, details)
}

func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, nil)
}

func WriteForbidden(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusForbidden, message, nil)
}

func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, nil)
}

func WriteConflict(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return WriteError(w, http.StatusConflict, message, details)
}

func WriteServiceUnavailable(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusServiceUnavailable, message, nil)
}

func WriteInternalServerError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, nil)
}

// WriteError writes an ErrorResponse for status. Unknown statuses are
// reported as internal_error; an empty message takes the status default.
func WriteError(w http.ResponseWriter, status int, message string, details map[string]interface{}) error {
	se, ok := statusErrors[status]
	if !ok {
		se = statusErrors[http.StatusInternalServerError]
	}
	if message == "" {
		message = se.defaultMessage
	}

	return WriteJSON(w, status, ErrorResponse{
		Error:   se.code,
		Message: message,
		Details: details,
	})
}
