package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/billgate/internal/common"
)

// errorResponse is the envelope returned on every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a sentinel error to the wire envelope. Unknown errors
// collapse to a generic internal response so nothing leaks to clients.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, common.ErrorNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, common.ErrInvalidPin), errors.Is(err, common.ErrInvalidPinFormat):
		status, code = http.StatusUnauthorized, "invalid_pin"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, common.ErrInvalidAmount):
		status, code = http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, common.ErrTemplateLeaseHeld):
		status, code = http.StatusConflict, "lease_held"
	default:
		status, code = http.StatusInternalServerError, "internal"
		err = common.ErrorInternal
	}

	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
