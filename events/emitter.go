// Package events provides a minimal typed publish/subscribe registry used
// for provider lifecycle notifications.
package events

import "sync"

// Unsubscribe removes the subscription it was returned for. Calling it more
// than once is a no-op.
type Unsubscribe func()

type subscription[P any] struct {
	id      uint64
	once    bool
	handler func(P)
}

// Emitter dispatches payloads of type P to handlers keyed by event E.
// Handlers run synchronously, in registration order. Dispatch per emitter is
// serialized; handlers may subscribe or unsubscribe from within a callback.
type Emitter[E comparable, P any] struct {
	mu   sync.Mutex
	next uint64
	subs map[E][]*subscription[P]
}

func New[E comparable, P any]() *Emitter[E, P] {
	return &Emitter[E, P]{subs: make(map[E][]*subscription[P])}
}

// Subscribe registers a handler for an event.
func (e *Emitter[E, P]) Subscribe(event E, handler func(P)) Unsubscribe {
	return e.add(event, handler, false)
}

// SubscribeOnce registers a handler that is removed after its first call.
func (e *Emitter[E, P]) SubscribeOnce(event E, handler func(P)) Unsubscribe {
	return e.add(event, handler, true)
}

func (e *Emitter[E, P]) add(event E, handler func(P), once bool) Unsubscribe {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	sub := &subscription[P]{id: e.next, once: once, handler: handler}
	e.subs[event] = append(e.subs[event], sub)

	id := sub.id
	return func() { e.remove(event, id) }
}

func (e *Emitter[E, P]) remove(event E, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subs[event]
	for i, sub := range subs {
		if sub.id == id {
			e.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit calls every handler registered for the event with the payload.
// One-shot handlers are removed before they run.
func (e *Emitter[E, P]) Emit(event E, payload P) {
	e.mu.Lock()
	subs := e.subs[event]
	active := make([]*subscription[P], len(subs))
	copy(active, subs)

	remaining := subs[:0:0]
	for _, sub := range subs {
		if !sub.once {
			remaining = append(remaining, sub)
		}
	}
	e.subs[event] = remaining
	e.mu.Unlock()

	for _, sub := range active {
		sub.handler(payload)
	}
}
