// Package httpx provides HTTP response utilities for the JSON API surface.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the fixed error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListResponse is the envelope returned by every paginated listing endpoint.
type ListResponse struct {
	Items any     `json:"items"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
	Count int     `json:"count"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends the error envelope with the given kind slug and message.
func Error(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
