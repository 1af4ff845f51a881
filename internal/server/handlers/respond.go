// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cadence/internal/domain/llm"
	"cadence/internal/platform/logger"
)

// maxBodyBytes caps request bodies accepted by every JSON endpoint
const maxBodyBytes = 1 << 20

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses. Server errors are logged with their cause.
func respondWithError(w http.ResponseWriter, log *logger.Logger, code int, message string, err error) {
	if err != nil && code >= 500 && log != nil {
		log.Error("HTTP error", "code", code, "message", message, "error", err)
	}

	respondWithJSON(w, code, map[string]string{"error": message})
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// generationStatus maps generation failures to an HTTP status
func generationStatus(err error) int {
	if errors.Is(err, llm.ErrAllProvidersFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
