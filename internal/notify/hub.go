// Package notify implements the admin observer fan-out: a registry of
// currently connected dashboard channels that receives a lightweight
// "state changed" signal after every successful draw.  Delivery is purely
// advisory; there is no replay and no backlog, dashboards simply re-fetch
// stats when poked.
package notify

import "sync"

// Hub is the synchronized observer registry.  Register and Unregister are
// called from WebSocket connection handlers while Broadcast is called from
// draw commits, so all set access happens under the mutex.
type Hub struct {
    mu        sync.Mutex
    observers map[chan struct{}]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
    return &Hub{observers: make(map[chan struct{}]struct{})}
}

// Register adds a new observer and returns its signal channel.  The
// channel is buffered so a slow observer coalesces signals instead of
// blocking a broadcast.
func (h *Hub) Register() chan struct{} {
    ch := make(chan struct{}, 1)
    h.mu.Lock()
    h.observers[ch] = struct{}{}
    h.mu.Unlock()
    return ch
}

// Unregister removes an observer and closes its channel.  Unregistering a
// channel that was never registered (or twice) is a no-op.
func (h *Hub) Unregister(ch chan struct{}) {
    h.mu.Lock()
    defer h.mu.Unlock()
    if _, ok := h.observers[ch]; !ok {
        return
    }
    delete(h.observers, ch)
    close(ch)
}

// Broadcast sends the state-changed signal to every registered observer.
// Sends never block: an observer whose buffer already holds a pending
// signal is skipped, which is fine because one signal is as good as many.
func (h *Hub) Broadcast() {
    h.mu.Lock()
    defer h.mu.Unlock()
    for ch := range h.observers {
        select {
        case ch <- struct{}{}:
        default:
        }
    }
}

// Count reports how many observers are currently registered.
func (h *Hub) Count() int {
    h.mu.Lock()
    defer h.mu.Unlock()
    return len(h.observers)
}
