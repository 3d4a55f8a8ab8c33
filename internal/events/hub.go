package events

import (
	"context"
	"sync"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

const subscriberBuffer = 16

// Hub fans events out to in-process subscribers such as SSE streams.
// A subscriber that is not keeping up misses events rather than blocking publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan domain.CashRegisterEvent]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.CashRegisterEvent]struct{})}
}

// Publish delivers event to every current subscriber. It never blocks.
func (h *Hub) Publish(_ context.Context, event domain.CashRegisterEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a new subscriber. The returned func unsubscribes and
// closes the channel; it is also called when ctx is done. Calling it twice is safe.
func (h *Hub) Subscribe(ctx context.Context) (<-chan domain.CashRegisterEvent, func()) {
	ch := make(chan domain.CashRegisterEvent, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
