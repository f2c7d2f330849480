// Package notifybus broadcasts human-readable bank events to subscribers.
package notifybus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/rs/zerolog"
)

// Subscriber receives published events.
//
// Only pointer implementations can be unsubscribed; they are matched by identity.
type Subscriber interface {
	Notify(ctx context.Context, event string) error
}

// Bus keeps an ordered, non-owning list of subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// New returns a bus without subscribers.
func New() *Bus {
	return &Bus{}
}

// Subscribe appends s to the delivery list.
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, s)
}

// Unsubscribe removes the first registration of s. It returns domain.ErrNotSubscribed
// when s is not registered or is not a pointer.
func (b *Bus) Unsubscribe(s Subscriber) error {
	if s == nil || reflect.TypeOf(s).Kind() != reflect.Pointer {
		return domain.ErrNotSubscribed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Interface equality with a pointer operand never compares the other dynamic value.
	for i, sub := range b.subscribers {
		if sub == s {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return nil
		}
	}

	return domain.ErrNotSubscribed
}

// Len returns the number of registered subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}

// Publish delivers event to every current subscriber in subscription order.
//
// A failing or panicking subscriber is logged and skipped; delivery continues with the rest.
// It returns the number of subscribers that did not accept the event.
func (b *Bus) Publish(ctx context.Context, event string) int {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	l := zerolog.Ctx(ctx)

	failed := 0

	for i, s := range subscribers {
		if err := deliver(ctx, s, event); err != nil {
			failed++

			l.Warn().Err(err).
				Int("subscriber", i).
				Str("subscriber_type", fmt.Sprintf("%T", s)).
				Str("event", event).
				Msg("event delivery failed")
		}
	}

	return failed
}

func deliver(ctx context.Context, s Subscriber, event string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()

	return s.Notify(ctx, event)
}
