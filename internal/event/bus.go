package event

import (
	"log"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
)

// Handler receives one published event. It runs synchronously on the
// publishing goroutine, so a handler that blocks (writing to a full
// channel, waiting on a lock) blocks Publish and every handler after it.
type Handler func(Event)

// subscription is one registered handler, tagged with the event type it
// was registered for ("*" for SubscribeAll).
type subscription struct {
	id        string
	eventType string
	handler   Handler
}

// Bus fans a CaptureEngine's events out to the shells consuming them (the
// CLI's printEvent, a future tray UI). Publishers and subscribers never
// reference each other directly.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // eventType -> subscriptions
	nextID        atomic.Uint64
}

// NewBus creates an empty Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[string][]subscription),
	}
}

// Subscribe registers handler for eventType (e.g. "capture.succeeded").
// Returns a subscription ID that Unsubscribe accepts.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.generateID()
	sub := subscription{
		id:        id,
		eventType: eventType,
		handler:   handler,
	}

	b.subscriptions[eventType] = append(b.subscriptions[eventType], sub)
	return id
}

// SubscribeAll registers handler for every event type the bus ever
// publishes. This is how the CLI's printEvent renders the whole session
// without naming each event type.
// Returns a subscription ID that Unsubscribe accepts.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe("*", handler)
}

// Unsubscribe removes the subscription with the given ID.
// Returns true if a matching subscription was found and removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				// Remove subscription by re-slicing to exclude index i
				b.subscriptions[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish delivers event to every handler subscribed to its EventType,
// then to every SubscribeAll handler. Within each group handlers run in
// registration order. A handler that panics is recovered and logged;
// Publish still reaches every remaining handler, so one bad shell can't
// stall the engine's own event delivery.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	eventType := event.EventType()

	// Get specific handlers for this event type
	specificSubs := make([]subscription, len(b.subscriptions[eventType]))
	copy(specificSubs, b.subscriptions[eventType])

	// Get wildcard handlers that listen to all events
	wildcardSubs := make([]subscription, len(b.subscriptions["*"]))
	copy(wildcardSubs, b.subscriptions["*"])

	b.mu.RUnlock()

	// Dispatch to specific handlers
	for _, sub := range specificSubs {
		b.safeCall(sub.handler, event)
	}

	// Dispatch to wildcard handlers
	for _, sub := range wildcardSubs {
		b.safeCall(sub.handler, event)
	}
}

// safeCall invokes handler and recovers any panic, logging it with a
// stack trace so a broken shell handler can't take down the capture
// session it's merely observing.
func (b *Bus) safeCall(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: event handler panicked for event %s: %v\n%s",
				event.EventType(), r, debug.Stack())
		}
	}()
	handler(event)
}

// generateID returns a short, cheap-to-compute subscription ID. It only
// needs to be unique within one Bus's lifetime, not globally.
func (b *Bus) generateID() string {
	id := b.nextID.Add(1)
	return strconv.FormatUint(id, 36)
}

// Clear drops every subscription. Tests use this between cases to reset a
// shared Bus without constructing a new one.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[string][]subscription)
}

// SubscriptionCount reports how many handlers are currently registered,
// across all event types and SubscribeAll.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}
