package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/models"
	"hrcore/internal/provider"
	"hrcore/internal/session"
)

type loginReq struct {
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
}

// Login authenticates by employee number and password. The employee number is
// mapped to the provider login id with the same synthesis used at
// provisioning time. The response carries the role-based landing destination;
// an identity without role metadata gets none and stays on the neutral page.
func Login(p *provider.Provider, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.EmployeeNumber = strings.TrimSpace(req.EmployeeNumber)
		if req.EmployeeNumber == "" || req.Password == "" {
			http.Error(w, "employee_number and password required", http.StatusBadRequest)
			return
		}

		res, err := p.SignIn(r.Context(), p.LoginID(req.EmployeeNumber), req.Password)
		if err != nil {
			respondError(w, lg, err)
			return
		}

		role := session.RoleFor(&res.Identity)
		respondJSON(w, map[string]any{
			"token":       res.Token,
			"expires_at":  res.ExpiresAt,
			"role":        role,
			"redirect_to": session.LandingPath(role),
			"identity": map[string]any{
				"id":        res.Identity.ID,
				"login":     res.Identity.Login,
				"full_name": res.Identity.FullName(),
			},
		})
	}
}

// Logout revokes the current session. The client-side session is considered
// cleared no matter what the provider says, so the response is always a
// success; a failed server-side revocation is only logged.
func Logout(p *provider.Provider, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if err := p.SignOut(r.Context(), claims.JWTID); err != nil {
			lg.Warnw("server-side sign-out failed", "jti", claims.JWTID, "error", err)
		}
		respondJSON(w, map[string]any{"logged_out": true})
	}
}

// Me returns the authenticated identity and, when present, its employee
// profile.
func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var ident models.Identity
		if err := db.First(&ident, "id = ?", sub).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		out := map[string]any{
			"id":        ident.ID,
			"login":     ident.Login,
			"full_name": ident.FullName(),
			"role":      session.RoleFor(&ident),
			"is_active": ident.IsActive,
		}
		var emp models.Employee
		err := db.First(&emp, "identity_id = ?", sub).Error
		if err == nil {
			out["profile"] = emp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			lg.Warnw("profile lookup failed", "identity_id", sub, "error", err)
		}
		respondJSON(w, out)
	}
}
