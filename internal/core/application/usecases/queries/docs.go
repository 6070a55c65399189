// Package queries holds the read side: query objects built through
// constructors and handlers that read views straight from the database
// with raw SQL, bypassing the aggregates.
package queries
