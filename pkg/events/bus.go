// Package events provides a small in-process publish/subscribe bus.
package events

import "sync"

type listener[T any] struct {
	id int
	fn func(T)
}

// Bus fans a published value out to every subscribed listener in
// subscription order. Safe for concurrent use.
type Bus[T any] struct {
	mu        sync.RWMutex
	nextID    int
	listeners []listener[T]
}

// NewBus creates an empty bus
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener[T]{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to the listeners registered at the time of the call.
// Listeners run on the caller's goroutine, outside the bus lock, so they may
// subscribe or unsubscribe.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	snapshot := make([]listener[T], len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.RUnlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of registered listeners
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
