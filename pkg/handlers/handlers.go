// Package handlers provides shared HTTP response helpers for JSON APIs.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	// Headers are already written; an encode failure truncates the body.
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes it as a JSON error response with
// the given status code.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]string{"error": err.Error()}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		logger.Error("encode error response failed", "error", encErr)
	}
}
