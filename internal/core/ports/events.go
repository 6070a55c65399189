package ports

import (
	"context"

	"fooddelivery/internal/pkg/ddd"
)

// EventDispatcher delivers domain events synchronously inside the transaction
// that raised them. Handlers receive the same unit of work, so their writes
// commit or roll back together with the command.
type EventDispatcher interface {
	Dispatch(ctx context.Context, uow UnitOfWork, event ddd.DomainEvent) error
}

// EventPublisher receives events after a successful commit. Failures are the
// publisher's concern and never undo the transaction.
type EventPublisher interface {
	Publish(ctx context.Context, events ...ddd.DomainEvent)
}
