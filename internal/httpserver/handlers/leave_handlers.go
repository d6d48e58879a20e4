package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/models"
)

const dateLayout = "2006-01-02"

// CreateLeaveRequest files a pending leave request for the caller.
func CreateLeaveRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LeaveType string `json:"leave_type"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Reason    string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.LeaveType = strings.TrimSpace(req.LeaveType)
		if req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" {
			http.Error(w, "leave_type, start_date and end_date required", http.StatusBadRequest)
			return
		}
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if end.Before(start) {
			http.Error(w, "end_date before start_date", http.StatusBadRequest)
			return
		}

		lr := models.LeaveRequest{
			IdentityID: auth.Subject(r.Context()),
			LeaveType:  req.LeaveType,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Reason:     strings.TrimSpace(req.Reason),
			Status:     models.LeavePending,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := db.Create(&lr).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, lr)
	}
}

// MyLeaveRequests lists the caller's leave requests, newest first.
func MyLeaveRequests(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []models.LeaveRequest
		err := db.Where("identity_id = ?", auth.Subject(r.Context())).
			Order("created_at desc").Find(&reqs).Error
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, reqs)
	}
}

// ListLeaveRequests lists all leave requests. Admin only. ?status=pending
// narrows to one status.
func ListLeaveRequests(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Order("created_at desc").Limit(200)
		if status := r.URL.Query().Get("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var reqs []models.LeaveRequest
		if err := q.Find(&reqs).Error; err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, reqs)
	}
}

// UpdateLeaveStatus approves or rejects a pending request and notifies the
// requester. Admin only.
func UpdateLeaveStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Status != models.LeaveApproved && req.Status != models.LeaveRejected {
			http.Error(w, "status must be approved or rejected", http.StatusBadRequest)
			return
		}

		var lr models.LeaveRequest
		if err := db.First(&lr, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			respondError(w, lg, err)
			return
		}
		if lr.Status != models.LeavePending {
			http.Error(w, "request already decided", http.StatusConflict)
			return
		}

		lr.Status = req.Status
		lr.UpdatedAt = time.Now()
		if err := db.Save(&lr).Error; err != nil {
			respondError(w, lg, err)
			return
		}

		note := models.Notification{
			IdentityID: lr.IdentityID,
			Title:      fmt.Sprintf("Leave request %s", lr.Status),
			Message:    fmt.Sprintf("Your %s request for %s to %s was %s.", lr.LeaveType, lr.StartDate, lr.EndDate, lr.Status),
			Type:       "leave",
			ActionURL:  "/employee",
			CreatedAt:  time.Now(),
		}
		if err := db.Create(&note).Error; err != nil {
			lg.Warnw("failed to notify requester", "leave_request_id", lr.ID, "error", err)
		}
		respondJSON(w, lr)
	}
}
