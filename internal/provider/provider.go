// Package provider implements the authentication boundary: credential
// sign-in, session retrieval and revocation, privileged identity
// administration, and push-based auth state change notifications.
package provider

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/apperrors"
	"hrcore/internal/auth"
	"hrcore/internal/models"
)

const defaultDomain = "company.internal"

// Provider owns identities and sessions.
type Provider struct {
	db     *gorm.DB
	lg     *zap.SugaredLogger
	domain string
	events *hub
}

func New(db *gorm.DB, lg *zap.SugaredLogger) *Provider {
	domain := os.Getenv("COMPANY_DOMAIN")
	if domain == "" {
		domain = defaultDomain
	}
	return &Provider{db: db, lg: lg, domain: domain, events: newHub()}
}

// LoginID synthesizes the login credential for an employee number. The same
// mapping is applied at provisioning time and at sign-in time; it is the only
// way an employee number becomes something the provider understands.
func (p *Provider) LoginID(employeeNumber string) string {
	return strings.ToLower(strings.TrimSpace(employeeNumber)) + "@" + p.domain
}

// SignInResult is a freshly established session.
type SignInResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Identity  models.Identity `json:"identity"`
}

// SignIn authenticates a login id and password. Unknown logins, wrong
// passwords, and deactivated identities are indistinguishable to the caller.
func (p *Provider) SignIn(ctx context.Context, loginID, password string) (*SignInResult, error) {
	var ident models.Identity
	err := p.db.WithContext(ctx).First(&ident, "login = ?", strings.ToLower(loginID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}
	if !ident.IsActive {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
	}
	if err := auth.CheckPassword(ident.PasswordHash, password); err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
	}

	jti := uuid.NewString()
	expires := time.Now().Add(auth.TokenTTL())
	sess := models.Session{JTI: jti, IdentityID: ident.ID, ExpiresAt: expires, CreatedAt: time.Now()}
	if err := p.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}
	token, err := auth.Sign(ident.ID, ident.Role(), jti)
	if err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}

	p.events.emit(Event{Type: EventSignedIn, Identity: &ident})
	return &SignInResult{Token: token, ExpiresAt: expires, Identity: ident}, nil
}

// SignOut revokes the session identified by jti. Callers clear their local
// state regardless of the returned provider result.
func (p *Provider) SignOut(ctx context.Context, jti string) error {
	now := time.Now()
	res := p.db.WithContext(ctx).Model(&models.Session{}).
		Where("jti = ? AND revoked_at IS NULL", jti).
		Update("revoked_at", now)
	if res.Error != nil {
		return apperrors.NewRemoteError("sign out", res.Error)
	}
	p.events.emit(Event{Type: EventSignedOut})
	return nil
}

// SessionFromToken resolves a bearer token to its identity if the session is
// still live.
func (p *Provider) SessionFromToken(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := auth.Verify(token)
	if err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, err)
	}
	var sess models.Session
	if err := p.db.WithContext(ctx).First(&sess, "jti = ?", claims.JWTID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}
	if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
	}
	var ident models.Identity
	if err := p.db.WithContext(ctx).First(&ident, "id = ?", sess.IdentityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.ReasonTransport, err)
	}
	return &ident, nil
}

// Subscribe registers for auth state change notifications.
func (p *Provider) Subscribe() (<-chan Event, func()) {
	return p.events.subscribe()
}

// Admin is the privileged identity-administration surface. It is handed only
// to the provisioning workflow behind the admin-gated routes; ordinary
// sessions never reach it.
type Admin struct {
	p *Provider
}

// Admin returns the privileged surface.
func (p *Provider) Admin() *Admin { return &Admin{p: p} }

// CreateIdentity creates a new identity with the given login, password and
// metadata bag and returns its id. A duplicate login fails the creation.
func (a *Admin) CreateIdentity(ctx context.Context, loginID, password string, metadata map[string]any) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", apperrors.NewRemoteError("create identity", err)
	}
	ident := models.Identity{
		ID:           uuid.NewString(),
		Login:        strings.ToLower(loginID),
		PasswordHash: hash,
		Metadata:     models.JSONBFrom(metadata),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := a.p.db.WithContext(ctx).Create(&ident).Error; err != nil {
		return "", apperrors.NewRemoteError("create identity", err)
	}
	return ident.ID, nil
}

// DeleteIdentity removes an identity and revokes its sessions. Best effort:
// used as the compensating action when profile creation fails.
func (a *Admin) DeleteIdentity(ctx context.Context, id string) error {
	if err := a.p.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", id).Error; err != nil {
		return apperrors.NewRemoteError("delete identity", err)
	}
	now := time.Now()
	if err := a.p.db.WithContext(ctx).Model(&models.Session{}).
		Where("identity_id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error; err != nil {
		a.p.lg.Warnw("failed to revoke sessions for deleted identity", "identity_id", id, "error", err)
	}
	return nil
}

// LookupByLogin fetches an identity by login id.
func (p *Provider) LookupByLogin(ctx context.Context, loginID string) (*models.Identity, error) {
	var ident models.Identity
	err := p.db.WithContext(ctx).First(&ident, "login = ?", strings.ToLower(loginID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewRemoteError("lookup identity", err)
	}
	return &ident, nil
}
