package provider

import (
	"sync"

	"hrcore/internal/models"
)

// EventType classifies auth state change notifications.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
	EventRefreshed EventType = "token_refreshed"
)

// Event is a pushed auth state change. Identity is nil for signed_out.
type Event struct {
	Type     EventType
	Identity *models.Identity
}

// hub fans auth events out to subscribers. Sends never block: a subscriber
// that stops draining its channel misses events instead of stalling sign-in.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan Event)}
}

// subscribe registers a listener. The returned cancel detaches it and closes
// the channel.
func (h *hub) subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (h *hub) emit(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
