// Package employees implements the privileged provisioning workflow: an
// identity and its paired profile are created as one operation from the
// caller's view, with a compensating identity delete when the profile half
// fails. The invariant is that no identity ever exists without a profile.
package employees

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
	"hrcore/internal/session"
)

// IdentityAdmin is the privileged identity surface of the auth provider. It
// requires elevated credentials and must never be reachable from a non-admin
// role; the HTTP layer enforces that.
type IdentityAdmin interface {
	CreateIdentity(ctx context.Context, loginID, password string, metadata map[string]any) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
}

// ProfileStore is the employees table boundary.
type ProfileStore interface {
	Insert(ctx context.Context, emp *models.Employee) error
	List(ctx context.Context) ([]models.Employee, error)
}

// Provisioner creates employees. loginID is the shared employee-number to
// login-id mapping; it must be the same function applied at sign-in time.
type Provisioner struct {
	admin    IdentityAdmin
	profiles ProfileStore
	loginID  func(employeeNumber string) string
	lg       *zap.SugaredLogger
}

func NewProvisioner(admin IdentityAdmin, profiles ProfileStore, loginID func(string) string, lg *zap.SugaredLogger) *Provisioner {
	return &Provisioner{admin: admin, profiles: profiles, loginID: loginID, lg: lg}
}

// CreateInput carries the provisioning form fields. All are required.
type CreateInput struct {
	EmployeeNumber string
	Password       string
	FullName       string
	Position       string
	Department     string
}

func (in CreateInput) validate() error {
	var missing []string
	if in.EmployeeNumber == "" {
		missing = append(missing, "employee_number")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.FullName == "" {
		missing = append(missing, "full_name")
	}
	if in.Position == "" {
		missing = append(missing, "position")
	}
	if in.Department == "" {
		missing = append(missing, "department")
	}
	if len(missing) > 0 {
		return &apperrors.ValidationError{Missing: missing}
	}
	return nil
}

// Create provisions an identity and its profile. A failed profile insert
// deletes the just-created identity; the insert error is surfaced either way.
func (p *Provisioner) Create(ctx context.Context, in CreateInput) (*models.Employee, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	login := p.loginID(in.EmployeeNumber)
	identityID, err := p.admin.CreateIdentity(ctx, login, in.Password, map[string]any{
		"full_name": in.FullName,
		"user_role": session.RoleEmployee,
	})
	if err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}

	emp := &models.Employee{
		ID:             uuid.NewString(),
		IdentityID:     identityID,
		EmployeeNumber: in.EmployeeNumber,
		FullName:       in.FullName,
		Position:       in.Position,
		Department:     in.Department,
		CreatedAt:      time.Now(),
	}
	if err := p.profiles.Insert(ctx, emp); err != nil {
		// Compensate: no orphan identities. The original error wins even if
		// the compensation itself fails.
		if delErr := p.admin.DeleteIdentity(ctx, identityID); delErr != nil {
			p.lg.Errorw("compensating identity delete failed after profile insert error",
				"identity_id", identityID, "login", login,
				"insert_error", err, "delete_error", delErr)
		}
		return nil, err
	}

	p.lg.Infow("employee provisioned", "employee_number", in.EmployeeNumber, "identity_id", identityID)
	return emp, nil
}

// List returns all employee profiles in insertion order.
func (p *Provisioner) List(ctx context.Context) ([]models.Employee, error) {
	return p.profiles.List(ctx)
}
