package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hrcore/internal/apperrors"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError maps the error taxonomy onto HTTP statuses. Every failure
// resolves to a single descriptive message; nothing fails silently.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	status := http.StatusInternalServerError

	var ve *apperrors.ValidationError
	var ae *apperrors.AuthError
	var re *apperrors.RemoteError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &ae):
		switch ae.Reason {
		case apperrors.ReasonInvalidCredentials:
			status = http.StatusUnauthorized
		case apperrors.ReasonUnauthorized:
			status = http.StatusForbidden
		default:
			status = http.StatusBadGateway
		}
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.As(err, &re):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		lg.Errorw("request failed", "status", status, "error", err)
	}
	respondStatus(w, status, map[string]string{"error": err.Error()})
}
