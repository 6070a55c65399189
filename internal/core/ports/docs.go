// Package ports defines the contracts between the marketplace core and its
// infrastructure: repositories, the unit of work, the payment gateway, and the
// event and notification sinks.
//
// Repository methods return errs.ObjectNotFoundError when a lookup misses and
// errs.ConflictError when an optimistic update lost a race.
package ports
