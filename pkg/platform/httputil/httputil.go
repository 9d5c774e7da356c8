// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes and domain error codes map to statuses in one place.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "correlativos/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorEnvelope is the wire format for all error responses.
type errorEnvelope struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError translates a domain error into an HTTP error response.
// Internal errors omit the description so infrastructure details never leak
// to clients; every other category includes the domain message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	envelope := errorEnvelope{Error: string(code)}
	if status < http.StatusInternalServerError {
		envelope.Description = dErrors.MessageOf(err)
	}
	WriteJSON(w, status, envelope)
}
