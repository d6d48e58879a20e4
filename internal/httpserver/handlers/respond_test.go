package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"hrcore/internal/apperrors"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &apperrors.ValidationError{Missing: []string{"position"}}, want: http.StatusBadRequest},
		{name: "invalid credentials", err: apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil), want: http.StatusUnauthorized},
		{name: "unauthorized", err: apperrors.NewAuthError(apperrors.ReasonUnauthorized, nil), want: http.StatusForbidden},
		{name: "auth transport", err: apperrors.NewAuthError(apperrors.ReasonTransport, errors.New("connection refused")), want: http.StatusBadGateway},
		{name: "not found", err: fmt.Errorf("document d-1: %w", apperrors.ErrNotFound), want: http.StatusNotFound},
		{name: "remote", err: apperrors.NewRemoteError("list logs", errors.New("connection refused")), want: http.StatusBadGateway},
		{name: "unclassified", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, zap.NewNop().Sugar(), test.err)
			if rec.Code != test.want {
				t.Errorf("status = %d, want %d", rec.Code, test.want)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message missing from body")
			}
		})
	}
}
