// Package httpjson writes the uniform JSON envelopes used by every API
// endpoint: {"status":"success", ...} on success and
// {"status":"error","message":...} on failure.
//
// The message field carries human-readable diagnostics only; clients must
// not parse it programmatically.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Success writes a 200 response merging fields into the success envelope.
// Keys in fields must not include "status".
func Success(w http.ResponseWriter, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	body["status"] = "success"
	for k, v := range fields {
		body[k] = v
	}
	write(w, http.StatusOK, body)
}

// Error writes the error envelope with the given HTTP status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]any{
		"status":  "error",
		"message": message,
	})
}

func write(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are gone at this point; nothing to do but log.
		zap.L().Warn("encode response failed", zap.Error(err))
	}
}
