// Package services provides domain services that coordinate several aggregates
// in one business step.
//
// The package includes:
//   - Checkout: turns a cart into an order with frozen catalog snapshots
//   - DriverDispatcher: picks an available driver for an order waiting for pickup
//
// Services never persist anything; callers load the aggregates and store the
// results inside one unit of work.
package services
