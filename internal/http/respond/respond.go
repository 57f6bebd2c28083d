// Package respond writes the API's uniform JSON envelope. Every handler
// success and failure goes through it so clients can rely on one shape.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the standard API response wrapper. Code mirrors the HTTP
// status so clients parsing only the body still see it.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a success or informational response. An empty message falls
// back to the standard status text.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, Envelope{Code: status, Message: messageOr(message, status), Data: data})
}

// Error writes an error response with no data payload.
func Error(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, Envelope{Code: status, Message: messageOr(message, status)})
}

func messageOr(message string, status int) string {
	if message == "" {
		return http.StatusText(status)
	}
	return message
}

func writeEnvelope(w http.ResponseWriter, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
