package services

import (
	"sync"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// EventHandler receives a dispatched event and reports whether it handled it.
type EventHandler func(ev domain.Event) bool

// EventDispatcher fans keyboard and pointer events out to subscribed
// handlers. Subscriptions are explicit so a disposed widget never sees
// another event.
type EventDispatcher struct {
	mu       sync.Mutex
	handlers map[uint64]EventHandler
	order    []uint64
	nextID   uint64
}

// NewEventDispatcher creates an empty dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[uint64]EventHandler),
	}
}

// Subscribe registers handler and returns a function that removes it.
// The returned function is idempotent.
func (d *EventDispatcher) Subscribe(handler EventHandler) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.handlers[id] = handler
	d.order = append(d.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			d.remove(id)
		})
	}
}

func (d *EventDispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.handlers, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Dispatch delivers ev to every handler in subscription order.
// It returns true if any handler handled the event.
func (d *EventDispatcher) Dispatch(ev domain.Event) bool {
	d.mu.Lock()
	handlers := make([]EventHandler, 0, len(d.order))
	for _, id := range d.order {
		handlers = append(handlers, d.handlers[id])
	}
	d.mu.Unlock()

	handled := false
	for _, h := range handlers {
		if h(ev) {
			handled = true
		}
	}
	return handled
}

// Len returns the number of subscribed handlers.
func (d *EventDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
