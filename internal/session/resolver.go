// Package session resolves authentication state into a role-aware snapshot.
// The Resolver is the single source of truth for routing decisions: consumers
// read its latest snapshot and never derive a role from anything else.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"hrcore/internal/models"
	"hrcore/internal/provider"
)

// Roles understood by the application. No other values are defined; an
// identity whose metadata carries anything else is treated as role-less.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleNone     = ""
)

// RoleFor derives the routing role from an identity's metadata bag.
func RoleFor(ident *models.Identity) string {
	if ident == nil {
		return RoleNone
	}
	switch r := ident.Role(); r {
	case RoleAdmin, RoleEmployee:
		return r
	default:
		return RoleNone
	}
}

// LandingPath maps a role to its landing destination. A role-less identity
// gets no destination and stays on the neutral page.
func LandingPath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleEmployee:
		return "/employee"
	default:
		return ""
	}
}

// State of the resolver lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

// Snapshot is the resolver's current view. Identity is nil unless
// authenticated; Role is derived, never stored independently.
type Snapshot struct {
	State    State
	Identity *models.Identity
	Role     string
}

// Loading reports whether the initial session fetch is still in flight.
func (s Snapshot) Loading() bool {
	return s.State == StateUninitialized || s.State == StateLoading
}

// Authenticated reports whether an identity is present.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Gateway is the slice of the auth provider the resolver consumes.
type Gateway interface {
	GetSession(ctx context.Context) (*models.Identity, error)
	SignOut(ctx context.Context) error
	Subscribe() (<-chan provider.Event, func())
}

// Resolver owns process-wide auth state. It is single-writer: only the
// notification consumer and Logout mutate the snapshot.
type Resolver struct {
	gw Gateway
	lg *zap.SugaredLogger

	mu     sync.RWMutex
	snap   Snapshot
	cancel func()
	done   chan struct{}
}

func NewResolver(gw Gateway, lg *zap.SugaredLogger) *Resolver {
	return &Resolver{gw: gw, lg: lg, snap: Snapshot{State: StateUninitialized}}
}

// Start performs the initial session fetch and registers for change
// notifications. Registration happens regardless of the fetch outcome: a
// transport failure lands the resolver in Anonymous and returns the error,
// but the listener stays attached so a later sign-in is still observed.
func (r *Resolver) Start(ctx context.Context) error {
	r.set(Snapshot{State: StateLoading})

	ident, err := r.gw.GetSession(ctx)
	if err != nil {
		r.set(Snapshot{State: StateAnonymous})
	} else {
		r.apply(ident)
	}

	ch, cancel := r.gw.Subscribe()
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.consume(ch)
	return err
}

func (r *Resolver) consume(ch <-chan provider.Event) {
	for ev := range ch {
		switch ev.Type {
		case provider.EventSignedOut:
			r.apply(nil)
		default:
			r.apply(ev.Identity)
		}
	}
	close(r.done)
}

func (r *Resolver) apply(ident *models.Identity) {
	if ident == nil {
		r.set(Snapshot{State: StateAnonymous})
		return
	}
	r.set(Snapshot{State: StateAuthenticated, Identity: ident, Role: RoleFor(ident)})
}

func (r *Resolver) set(s Snapshot) {
	r.mu.Lock()
	r.snap = s
	r.mu.Unlock()
}

// Current returns the latest resolved snapshot.
func (r *Resolver) Current() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Logout signs out at the provider and clears local state synchronously, so
// no consumer observes a stale authenticated snapshot while the signed_out
// notification is still in flight.
func (r *Resolver) Logout(ctx context.Context) error {
	err := r.gw.SignOut(ctx)
	r.set(Snapshot{State: StateAnonymous})
	if err != nil {
		r.lg.Warnw("provider sign-out failed, local state cleared anyway", "error", err)
	}
	return err
}

// Close detaches the change-notification listener.
func (r *Resolver) Close() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
		r.cancel = nil
	}
}
