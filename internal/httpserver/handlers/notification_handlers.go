package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/models"
)

// MyNotifications lists the caller's notifications, newest first.
func MyNotifications(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var notes []models.Notification
		err := db.Where("identity_id = ?", auth.Subject(r.Context())).
			Order("created_at desc").Limit(100).Find(&notes).Error
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, notes)
	}
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		res := db.Model(&models.Notification{}).
			Where("id = ? AND identity_id = ?", id, auth.Subject(r.Context())).
			Update("read", true)
		if res.Error != nil {
			respondError(w, lg, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{"read": true})
	}
}
