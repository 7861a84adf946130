package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// envelope is the uniform response shape: {"status": ..., "message": ...,
// "data": ...}. Data is omitted when empty.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Status: "success", Data: data})
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Status: "success", Message: message})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Status: "error", Message: message})
}

// writeServiceError maps service-layer sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "email is already registered")
	case errors.Is(err, common.ErrInvalidCredential):
		writeError(w, http.StatusBadRequest, "invalid email or password")
	case errors.Is(err, common.ErrTokenNotFound):
		writeError(w, http.StatusBadRequest, "invalid or expired reset token")
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrDelivery):
		writeError(w, http.StatusBadGateway, "could not send email")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
