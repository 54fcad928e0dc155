package dashboard

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Hawkeyeeye/smart-farmer/internal/access"
)

// subscriber is one connected push client. The plan captured at
// subscribe time decides what it is allowed to see.
type subscriber struct {
	plan access.Plan
	ch   chan []byte
}

// Hub fans each refresh cycle's payload out to connected push clients,
// redacted per subscriber plan.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*subscriber
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Subscribe registers a push client and returns its id and the channel
// it will receive marshaled payloads on. The channel is buffered; a
// slow client that falls a few payloads behind loses the oldest rather
// than blocking the broadcast.
func (h *Hub) Subscribe(plan access.Plan) (string, <-chan []byte) {
	id := uuid.NewString()
	sub := &subscriber{
		plan: plan,
		ch:   make(chan []byte, 4),
	}

	h.mu.Lock()
	h.subs[id] = sub
	h.mu.Unlock()

	return id, sub.ch
}

// Unsubscribe removes a push client and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast sends the payload to every subscriber, redacted per each
// subscriber's plan. Sends never block: a full channel drops its oldest
// entry first.
func (h *Hub) Broadcast(p Payload) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subs {
		b, err := json.Marshal(Redact(p, sub.plan))
		if err != nil {
			log.Printf("hub: marshal payload for %s: %v", id, err)
			continue
		}

		select {
		case sub.ch <- b:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- b:
			default:
			}
		}
	}
}
