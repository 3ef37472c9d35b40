package content

import (
	"context"
	"sync"
)

// Hub fans reloaded content out to every live session. Each subscriber
// holds at most one pending Site; a newer one replaces it.
type Hub struct {
	mu      sync.Mutex
	current *Site
	subs    map[chan *Site]struct{}
}

func NewHub(initial *Site) *Hub {
	return &Hub{current: initial, subs: make(map[chan *Site]struct{})}
}

// Current returns the latest published content.
func (h *Hub) Current() *Site {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Subscribe registers a subscriber. The returned func unsubscribes and
// closes the channel; calling it twice is safe.
func (h *Hub) Subscribe() (<-chan *Site, func()) {
	ch := make(chan *Site, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, ch)
			close(ch)
		})
	}
}

// Publish makes site current and offers it to every subscriber.
func (h *Hub) Publish(site *Site) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = site
	for ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- site
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Run publishes everything received on updates until ctx is done or
// updates is closed.
func (h *Hub) Run(ctx context.Context, updates <-chan *Site) {
	for {
		select {
		case <-ctx.Done():
			return
		case site, ok := <-updates:
			if !ok {
				return
			}
			h.Publish(site)
		}
	}
}
