// Package ddd holds the building blocks shared by every aggregate root:
// a buffer of domain events raised while a command mutates the aggregate.
//
// Events stay buffered until the unit of work commits. The unit of work drains
// them from each tracked aggregate, dispatches them to in-transaction handlers
// and, once the database commit succeeds, hands them to post-commit publishers.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate.
type DomainEvent interface {
	// EventID uniquely identifies this occurrence.
	EventID() uuid.UUID

	// EventName is the stable routing key used by dispatchers.
	EventName() string

	// OccurredAt is the moment the aggregate changed.
	OccurredAt() time.Time
}

// AggregateRoot is implemented by every aggregate whose repository tracks it in a unit of work.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregate is embedded into aggregate roots to buffer their events.
// The zero value is ready to use.
type BaseAggregate struct {
	events []DomainEvent
}

// RaiseDomainEvent appends an event to the buffer.
func (a *BaseAggregate) RaiseDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// DomainEvents returns a copy of the buffered events in the order they were raised.
func (a *BaseAggregate) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

// ClearDomainEvents empties the buffer.
func (a *BaseAggregate) ClearDomainEvents() {
	a.events = nil
}

// BaseEvent carries the identity and timestamp every event needs.
// Concrete events embed it and add their payload.
type BaseEvent struct {
	id         uuid.UUID
	name       string
	occurredAt time.Time
}

// NewBaseEvent stamps a new event with a random identifier.
func NewBaseEvent(name string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		id:         uuid.New(),
		name:       name,
		occurredAt: occurredAt,
	}
}

func (e BaseEvent) EventID() uuid.UUID {
	return e.id
}

func (e BaseEvent) EventName() string {
	return e.name
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}
