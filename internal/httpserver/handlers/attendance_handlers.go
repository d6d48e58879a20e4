package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/models"
)

// Check-ins at or before this local time count as on_time.
const onTimeCutoff = "09:00"

func attendanceStatus(t time.Time) string {
	cutoff, _ := time.ParseInLocation("2006-01-02 15:04", t.Format("2006-01-02")+" "+onTimeCutoff, t.Location())
	if t.After(cutoff) {
		return models.AttendanceLate
	}
	return models.AttendanceOnTime
}

// CheckIn opens today's attendance record for the caller. One record per
// identity per day.
func CheckIn(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		now := time.Now()
		date := now.Format("2006-01-02")

		var existing models.AttendanceRecord
		err := db.First(&existing, "identity_id = ? AND date = ?", sub, date).Error
		if err == nil {
			http.Error(w, "already checked in today", http.StatusConflict)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, lg, err)
			return
		}

		rec := models.AttendanceRecord{
			IdentityID: sub,
			Date:       date,
			CheckIn:    &now,
			Status:     attendanceStatus(now),
		}
		if err := db.Create(&rec).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, rec)
	}
}

// CheckOut closes today's attendance record and computes hours worked.
func CheckOut(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		now := time.Now()
		date := now.Format("2006-01-02")

		var rec models.AttendanceRecord
		if err := db.First(&rec, "identity_id = ? AND date = ?", sub, date).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "no check-in today", http.StatusNotFound)
				return
			}
			respondError(w, lg, err)
			return
		}
		if rec.CheckOut != nil {
			http.Error(w, "already checked out", http.StatusConflict)
			return
		}

		rec.CheckOut = &now
		if rec.CheckIn != nil {
			rec.HoursWorked = math.Round(now.Sub(*rec.CheckIn).Hours()*100) / 100
		}
		if err := db.Save(&rec).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, rec)
	}
}

// MyAttendance lists the caller's recent attendance records.
func MyAttendance(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var recs []models.AttendanceRecord
		if err := db.Where("identity_id = ?", sub).Order("date desc").Limit(90).Find(&recs).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, recs)
	}
}

// ListAttendance lists recent records across all employees. Admin only.
func ListAttendance(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var recs []models.AttendanceRecord
		if err := db.Order("date desc").Limit(200).Find(&recs).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, recs)
	}
}
