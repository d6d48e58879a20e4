// Package audit persists an audit trail of auth state changes by consuming
// the provider's change-notification stream.
package audit

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/models"
	"hrcore/internal/provider"
)

// EventSource is the subscription surface the recorder consumes.
type EventSource interface {
	Subscribe() (<-chan provider.Event, func())
}

// Recorder writes one audit row per auth event. Failures to write are logged
// and dropped; auditing never blocks or fails sign-in.
type Recorder struct {
	db *gorm.DB
	lg *zap.SugaredLogger

	cancel func()
	done   chan struct{}
}

func NewRecorder(db *gorm.DB, lg *zap.SugaredLogger) *Recorder {
	return &Recorder{db: db, lg: lg}
}

// Start subscribes to the event source and records until Stop is called.
func (r *Recorder) Start(src EventSource) {
	ch, cancel := src.Subscribe()
	r.cancel = cancel
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		for ev := range ch {
			r.record(ev)
		}
	}()
}

func (r *Recorder) record(ev provider.Event) {
	row := models.AuditLog{
		Action:    "auth." + string(ev.Type),
		Metadata:  models.JSONB("{}"),
		CreatedAt: time.Now(),
	}
	if ev.Identity != nil {
		id := ev.Identity.ID
		row.IdentityID = &id
		row.Metadata = models.JSONBFrom(map[string]any{"login": ev.Identity.Login})
	}
	if err := r.db.Create(&row).Error; err != nil {
		r.lg.Warnw("failed to write audit row", "action", row.Action, "error", err)
	}
}

// Stop detaches from the event source and waits for in-flight writes.
func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
		r.cancel = nil
	}
}
