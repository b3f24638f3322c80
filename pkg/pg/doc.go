// Package pg provides the PostgreSQL connection pool and schema migrations
// for the notification storage backend.
package pg
