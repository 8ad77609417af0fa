package realtime

import (
	"encoding/json"
	"sync"

	"resto-live/utils"
)

// Event names pushed to connected clients.
const (
	EventOrderCreated   = "order:new"
	EventOrderUpdated   = "order:update"
	EventMenuUpdated    = "menu:update"
	EventPaymentUpdated = "payment:update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Subscriber receives broadcast frames. Deliver must not block: a
// subscriber that cannot keep up drops the frame and reports false.
type Subscriber interface {
	ID() string
	Deliver(frame []byte) bool
}

// Hub fans events out to every currently connected subscriber.
// Delivery is best-effort at-most-once: no queuing for absent
// subscribers, no retry, and a publish never fails the request
// that triggered it.
type Hub struct {
	mu   sync.Mutex
	subs map[string]Subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]Subscriber)}
}

func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[s.ID()] = s
}

func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, s.ID())
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish marshals the event once and hands it to every subscriber.
func (h *Hub) Publish(event string, data interface{}) {
	frame, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("error marshaling %s event: %v", event, err)
		}
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if !s.Deliver(frame) && utils.InfoLogger != nil {
			utils.InfoLogger.Printf("dropped %s event for slow subscriber %s", event, s.ID())
		}
	}
}
