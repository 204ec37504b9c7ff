package dnd

import (
	"context"
	"sync"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// Handler receives published drag events.
type Handler func(ctx context.Context, ev entity.DragEvent)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a typed observer list keyed by event kind. Publish delivers
// synchronously, in subscription order, before returning.
type Bus struct {
	mu   sync.Mutex
	subs map[entity.EventKind][]subscription
	all  []subscription
	next uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[entity.EventKind][]subscription)}
}

// Subscribe registers h for events of kind. The returned func unsubscribes.
func (b *Bus) Subscribe(kind entity.EventKind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subs[kind] = removeSubscription(b.subs[kind], id)
	}
}

// SubscribeAll registers h for every event kind.
func (b *Bus) SubscribeAll(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.all = append(b.all, subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = removeSubscription(b.all, id)
	}
}

// Publish delivers ev to kind-specific subscribers, then to catch-all ones.
func (b *Bus) Publish(ctx context.Context, ev entity.DragEvent) {
	b.mu.Lock()
	targets := make([]subscription, 0, len(b.subs[ev.Kind])+len(b.all))
	targets = append(targets, b.subs[ev.Kind]...)
	targets = append(targets, b.all...)
	b.mu.Unlock()

	for _, s := range targets {
		s.handler(ctx, ev)
	}
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
