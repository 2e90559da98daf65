package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/me/schedopt/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// writeJSON writes v as the complete response body. The wire contract
// is the bare document, no envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a structured APIError body.
func respondError(w http.ResponseWriter, status int, apiErr *model.APIError) {
	writeJSON(w, status, apiErr)
}
