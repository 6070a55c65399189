// Package order holds the Order aggregate and the lifecycle state machine of a placed purchase.
//
// The package includes:
//   - Order: the aggregate root with immutable total and catalog snapshots
//   - Status: the 17 lifecycle states and their adjacency map
//   - ItemSummary, VendorSummary: point-in-time copies of catalog data
//   - StatusChanged: the domain event raised for every accepted transition
//
// Key business rules:
//   - Status moves only along the edges returned by Status.AllowedTransitions
//   - DELIVERED is always followed by COMPLETED when driven through MarkDelivered
//   - A cancelled order releases its driver
//   - REFUNDED is only reachable from COMPLETED
package order
