package notify

import (
	"context"
	"sync"
)

// Hub fans invalidations out to in-process subscribers over channels.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	// mu is held for reading while sending on ch and for writing
	// while closing it
	mu     sync.RWMutex
	ch     chan Invalidation
	done   chan struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Subscribe returns a channel receiving all invalidations and a function
// that ends the subscription and closes the channel. Ending the
// subscription releases notifications still waiting for the subscriber.
func (h *Hub) Subscribe(buffer int) (<-chan Invalidation, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	sub := &subscriber{
		ch:   make(chan Invalidation, buffer),
		done: make(chan struct{}),
	}
	h.subs[id] = sub

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			close(sub.done)

			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()

			sub.mu.Lock()
			sub.closed = true
			close(sub.ch)
			sub.mu.Unlock()
		})
	}
}

// Notify delivers the invalidation to every subscriber. It blocks until
// every subscriber has received it, has unsubscribed or the context is done.
func (h *Hub) Notify(ctx context.Context, inv Invalidation) error {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.send(ctx, inv); err != nil {
			return err
		}
	}

	return nil
}

func (s *subscriber) send(ctx context.Context, inv Invalidation) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil
	}

	select {
	case s.ch <- inv:
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
