// Package events provides an in-process publish/subscribe bus used to
// decouple domain systems. Delivery is concurrent with per-handler error
// isolation; history is a bounded ring for diagnostics only, with no replay
// or durability guarantees.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWaitTimeout bounds WaitForEvent when the caller passes no timeout.
const DefaultWaitTimeout = 30 * time.Second

// DefaultHistorySize bounds the diagnostic event history.
const DefaultHistorySize = 100

// Event is one published occurrence. Target, when set, restricts delivery to
// subscribers registered with a matching source.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source,omitempty"`
	Target    string    `json:"target,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler consumes one event. A returned error is logged, never propagated:
// one failing subscriber must not affect delivery to others.
type Handler func(Event) error

// Filter narrows WaitForEvent to events it returns true for.
type Filter func(Event) bool

type subscription struct {
	id        uuid.UUID
	eventType string
	source    string
	handler   Handler
}

// Bus is the in-memory event bus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscription
	history     []Event
	historySize int
	waitTimeout time.Duration
	logger      *slog.Logger
}

// New creates a Bus with the given history bound and default wait timeout.
// Either value <= 0 takes the package default.
func New(historySize int, waitTimeout time.Duration, logger *slog.Logger) *Bus {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Bus{
		subscribers: make(map[string][]subscription),
		historySize: historySize,
		waitTimeout: waitTimeout,
		logger:      logger.With("system", "events"),
	}
}

// Subscribe registers a handler for an event type and returns the
// subscription id. Source identifies the subscriber for target filtering;
// it may be empty.
func (b *Bus) Subscribe(eventType, source string, handler Handler) uuid.UUID {
	id := uuid.New()

	b.mu.Lock()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{
		id:        id,
		eventType: eventType,
		source:    source,
		handler:   handler,
	})
	b.mu.Unlock()

	b.logger.Debug("subscribed", "event_type", eventType, "source", source, "id", id)
	return id
}

// Unsubscribe removes a subscription by id, reporting whether it existed.
func (b *Bus) Unsubscribe(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Emit publishes an event to all matching subscribers concurrently and
// records it in the history ring. Emit returns once all handlers complete.
// A panicking or failing handler is logged and does not block the others.
func (b *Bus) Emit(eventType string, data any, source, target string) Event {
	event := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Source:    source,
		Target:    target,
		Data:      data,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	b.history = append(b.history, event)
	if len(b.history) > b.historySize {
		b.history = b.history[len(b.history)-b.historySize:]
	}
	subs := make([]subscription, len(b.subscribers[eventType]))
	copy(subs, b.subscribers[eventType])
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		if target != "" && sub.source != target {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.deliver(sub, event)
		}()
	}
	wg.Wait()

	return event
}

func (b *Bus) deliver(sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error(
				"event handler panic",
				"event_type", event.Type,
				"subscription", sub.id,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := sub.handler(event); err != nil {
		b.logger.Error(
			"event handler failed",
			"event_type", event.Type,
			"subscription", sub.id,
			"error", err,
		)
	}
}

// WaitForEvent blocks until an event of the given type passes the filter or
// the timeout elapses (<= 0 takes the bus default). The temporary
// subscription is removed before returning. Use a filter matching an echoed
// request id to correlate request/response pairs across the bus.
func (b *Bus) WaitForEvent(ctx context.Context, eventType string, timeout time.Duration, filter Filter) (Event, error) {
	if timeout <= 0 {
		timeout = b.waitTimeout
	}

	matched := make(chan Event, 1)
	id := b.Subscribe(eventType, "", func(event Event) error {
		if filter != nil && !filter(event) {
			return nil
		}
		select {
		case matched <- event:
		default:
		}
		return nil
	})
	defer b.Unsubscribe(id)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case event := <-matched:
		return event, nil
	case <-timer.C:
		return Event{}, fmt.Errorf("timeout waiting for event %q after %v", eventType, timeout)
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// History returns a copy of the retained events, oldest first.
func (b *Bus) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	history := make([]Event, len(b.history))
	copy(history, b.history)
	return history
}
