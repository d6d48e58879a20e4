package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/models"
	"hrcore/internal/session"
)

// MyLogs returns the caller's audit trail; ?all=1 lets an admin see the
// latest entries across every identity.
func MyLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := r.URL.Query().Get("all") == "1"
		q := db.Order("created_at desc").Limit(200)
		if !all || !auth.FromContext(r.Context()).HasRole(session.RoleAdmin) {
			q = q.Where("identity_id = ?", auth.Subject(r.Context()))
		}
		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, logs)
	}
}
