package eventhandlers

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
)

// FanOut hands committed events to every subscriber. A panicking subscriber is
// logged and does not stop the others.
type FanOut struct {
	subscribers []ports.EventPublisher
	logger      *slog.Logger
}

func NewFanOut(logger *slog.Logger, subscribers ...ports.EventPublisher) *FanOut {
	return &FanOut{subscribers: subscribers, logger: logger.With("component", "event-fanout")}
}

// Subscribe adds a subscriber. Not safe for use once publishing started.
func (f *FanOut) Subscribe(s ports.EventPublisher) {
	f.subscribers = append(f.subscribers, s)
}

func (f *FanOut) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	if len(events) == 0 {
		return
	}
	for _, s := range f.subscribers {
		f.publishTo(ctx, s, events)
	}
}

func (f *FanOut) publishTo(ctx context.Context, s ports.EventPublisher, events []ddd.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.ErrorContext(ctx, "event subscriber panicked", "panic", r)
		}
	}()
	s.Publish(ctx, events...)
}
