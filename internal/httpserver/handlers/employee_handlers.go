package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"hrcore/internal/employees"
)

// ListEmployees returns all employee profiles in insertion order. Admin only.
func ListEmployees(prov *employees.Provisioner, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		emps, err := prov.List(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, emps)
	}
}

// CreateEmployee runs the provisioning workflow: identity first, profile
// second, with rollback of the identity when the profile insert fails.
// Admin only; this is the only route that reaches the privileged provider
// surface.
func CreateEmployee(prov *employees.Provisioner, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EmployeeNumber string `json:"employee_number"`
			Password       string `json:"password"`
			FullName       string `json:"full_name"`
			Position       string `json:"position"`
			Department     string `json:"department"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		emp, err := prov.Create(r.Context(), employees.CreateInput{
			EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
			Password:       req.Password,
			FullName:       strings.TrimSpace(req.FullName),
			Position:       strings.TrimSpace(req.Position),
			Department:     strings.TrimSpace(req.Department),
		})
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, emp)
	}
}
