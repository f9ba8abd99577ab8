package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"choosy/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDropdownShowing = domain.EventDropdownShowing
	EventDropdownHiding  = domain.EventDropdownHiding
	EventValueChanged    = domain.EventValueChanged
	EventMaxSelected     = domain.EventMaxSelected
	EventHighlightMoved  = domain.EventHighlightMoved
	EventResultsRendered = domain.EventResultsRendered
	EventOptionsChanged  = domain.EventOptionsChanged
	EventConfigLoaded    = domain.EventConfigLoaded
	EventError           = domain.EventError
)

// Re-export domain event types
type DropdownShowingEvent = domain.DropdownShowingEvent
type DropdownHidingEvent = domain.DropdownHidingEvent
type ValueChangedEvent = domain.ValueChangedEvent
type MaxSelectedEvent = domain.MaxSelectedEvent
type HighlightMovedEvent = domain.HighlightMovedEvent
type ResultsRenderedEvent = domain.ResultsRenderedEvent
type OptionsChangedEvent = domain.OptionsChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus. Dispatch is synchronous:
// every handler runs on the publishing goroutine before Publish returns, so
// subscribers observe events in the exact order they were published.
type bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType][]subscription
}

type subscription struct {
	id      int
	handler EventHandler
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers registered mid-dispatch don't see this event
	subsCopy := make([]subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, sub := range subsCopy {
		callHandler(sub.handler, event)
	}
}

func callHandler(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
