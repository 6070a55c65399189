// Package kernel provides the value objects shared by every aggregate of the marketplace:
//   - UUID: identifiers of customers, carts, vendors, items, drivers, orders and payments
//   - Money: non-negative decimal amounts with two-digit scale for prices and totals
//
// Both are immutable and must be produced by their constructors; zero values fail Validate.
package kernel
