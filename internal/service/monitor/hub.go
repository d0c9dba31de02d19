package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servicezone/concierge/internal/model/convo"
)

// Event describes one processed inbound message, for live observation of
// conversations by admin tooling.
type Event struct {
	ID      string      `json:"id"`
	UserKey string      `json:"userKey"`
	Stage   convo.Stage `json:"stage"`
	Inbound string      `json:"inbound"`
	Replies []string    `json:"replies"`
	At      time.Time   `json:"at"`
}

// Hub fans conversation events out to subscribers. Publishing never blocks:
// a subscriber that cannot keep up loses events rather than stalling the
// webhook path.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish broadcasts one event to all current subscribers.
func (h *Hub) Publish(userKey string, stage convo.Stage, inbound string, replies []string) {
	event := Event{
		ID:      uuid.NewString(),
		UserKey: userKey,
		Stage:   stage,
		Inbound: inbound,
		Replies: append([]string(nil), replies...),
		At:      time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a new event channel. The returned cancel function
// removes the subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
