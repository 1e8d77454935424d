package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bolophil/SplitIt/internal/ledger"
	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error reply.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeValidationError maps engine and ledger sentinel errors to HTTP status
// codes. Anything not recognized as a caller mistake is an internal error.
func writeValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidSplit),
		errors.Is(err, models.ErrEmptyReceipt),
		errors.Is(err, models.ErrInconsistentTotals),
		errors.Is(err, models.ErrUnknownParticipant),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidMoney),
		errors.Is(err, money.ErrCurrencyMismatch):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
