// Package eventhandlers reacts to domain events.
//
// Two delivery paths exist. In-transaction handlers are registered on a
// Dispatcher and run inside Commit with the same unit of work, so their writes
// are atomic with the command. Post-commit subscribers are combined in a FanOut
// and only observe events whose transaction has committed.
package eventhandlers

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
)

// Handler processes one event inside the transaction that raised it.
type Handler interface {
	Handle(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	return f(ctx, uow, event)
}

// Dispatcher routes events to handlers by event name, in registration order.
// Registration happens at composition time; dispatching is read-only.
type Dispatcher struct {
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Register subscribes h to the named event.
func (d *Dispatcher) Register(eventName string, h Handler) {
	d.handlers[eventName] = append(d.handlers[eventName], h)
}

// Dispatch runs every handler of the event and stops at the first error.
func (d *Dispatcher) Dispatch(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	for _, h := range d.handlers[event.EventName()] {
		if err := h.Handle(ctx, uow, event); err != nil {
			return fmt.Errorf("handle %s: %w", event.EventName(), err)
		}
	}
	return nil
}
