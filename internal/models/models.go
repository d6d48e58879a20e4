package models

import "time"

// Identity is an authentication principal. The application never mutates
// identities outside of provisioning/deprovisioning; role and display name
// live in the Metadata bag (user_role, full_name).
type Identity struct {
	ID           string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Login        string    `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Metadata     JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role returns the user_role metadata field, or "" when absent.
func (i Identity) Role() string {
	return i.Metadata.GetString("user_role")
}

// FullName returns the full_name metadata field, or "" when absent.
func (i Identity) FullName() string {
	return i.Metadata.GetString("full_name")
}

// Employee is the application-owned profile paired 1:1 with an Identity.
type Employee struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdentityID     string    `gorm:"type:uuid;uniqueIndex;not null" json:"identity_id"`
	EmployeeNumber string    `gorm:"uniqueIndex;not null" json:"employee_number"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Position       string    `gorm:"not null" json:"position"`
	Department     string    `gorm:"not null" json:"department"`
	CreatedAt      time.Time `json:"created_at"`
}

// Document is the metadata record for a blob in the company-documents bucket.
// URL is derived from FilePath at read time and is never persisted.
type Document struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FileName   string    `gorm:"not null" json:"file_name"`
	FilePath   string    `gorm:"uniqueIndex;not null" json:"file_path"`
	FileType   string    `gorm:"not null" json:"file_type"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	UploadedBy string    `gorm:"type:uuid;index;not null" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	URL        string    `gorm:"-" json:"url,omitempty"`
}

type Session struct {
	JTI        string     `gorm:"primaryKey;size:64" json:"jti"`
	IdentityID string     `gorm:"type:uuid;index;not null" json:"identity_id"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID *string   `gorm:"type:uuid" json:"identity_id,omitempty"`
	Action     string    `gorm:"not null" json:"action"`
	Metadata   JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
}

// Attendance statuses.
const (
	AttendanceOnTime = "on_time"
	AttendanceLate   = "late"
	AttendanceAbsent = "absent"
)

type AttendanceRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID  string     `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day" json:"identity_id"`
	Date        string     `gorm:"size:10;not null;uniqueIndex:idx_attendance_day" json:"date"`
	CheckIn     *time.Time `json:"check_in,omitempty"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	Status      string     `gorm:"not null" json:"status"`
	HoursWorked float64    `json:"hours_worked,omitempty"`
}

// Leave request statuses.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID string    `gorm:"type:uuid;index;not null" json:"identity_id"`
	LeaveType  string    `gorm:"not null" json:"leave_type"`
	StartDate  string    `gorm:"size:10;not null" json:"start_date"`
	EndDate    string    `gorm:"size:10;not null" json:"end_date"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID string    `gorm:"type:uuid;index;not null" json:"identity_id"`
	Title      string    `gorm:"not null" json:"title"`
	Message    string    `gorm:"not null" json:"message"`
	Type       string    `gorm:"not null" json:"type"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	ActionURL  string    `json:"action_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
