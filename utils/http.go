package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a structured error response. The correlation ID
// is always echoed so denials can be matched to their audit receipts.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	ReasonCode string `json:"reason_code,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with the given body
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a 201 Created response with the given body
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, requestID, message string) error {
	return WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:     "bad_request",
		Message:   message,
		RequestID: requestID,
	})
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, requestID, message string) error {
	if message == "" {
		message = "Authentication required"
	}
	return WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
		Error:     "unauthorized",
		Message:   message,
		RequestID: requestID,
	})
}

// WriteForbidden writes a 403 Forbidden response carrying the denial
// reason code.
func WriteForbidden(w http.ResponseWriter, requestID, reasonCode string) error {
	return WriteJSON(w, http.StatusForbidden, ErrorResponse{
		Error:      "forbidden",
		ReasonCode: reasonCode,
		RequestID:  requestID,
	})
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, requestID, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:     "internal_error",
		Message:   message,
		RequestID: requestID,
	})
}
