package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/banking-ledger/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForMessage translates service response messages into HTTP statuses,
// separating client-fixable failures from server-side ones.
func statusForMessage(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "Account not found", "Transaction not found":
		return http.StatusNotFound
	case "Insufficient balance", "Account is not active", "Currency mismatch":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
