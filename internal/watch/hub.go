// Package watch delivers live full-snapshot subscriptions over SSE. Services
// publish a collection-changed signal after every successful mutation; each
// subscriber then re-reads its own role-filtered snapshot.
package watch

import "sync"

// Hub fans collection-changed signals out to subscribers. Signal channels
// have a buffer of one and a pending signal is simply left in place when a
// new one arrives, so a slow subscriber coalesces bursts into a single
// refresh instead of queueing stale work.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{} // collection -> subscriber id -> signal
}

// NewHub constructs a Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers interest in a collection. The returned channel receives
// a signal per change burst; cancel must be called when done.
func (h *Hub) Subscribe(collection string) (ch <-chan struct{}, cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	signal := make(chan struct{}, 1)
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan struct{})
	}
	h.subs[collection][id] = signal

	cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[collection]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subs, collection)
			}
		}
	}
	return signal, cancel
}

// Publish signals every subscriber of the collection. Never blocks: a
// subscriber that already holds an undelivered signal keeps just that one.
func (h *Hub) Publish(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, signal := range h.subs[collection] {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}

// NotifyFunc returns a closure services can call after mutations.
func (h *Hub) NotifyFunc(collection string) func() {
	return func() { h.Publish(collection) }
}
