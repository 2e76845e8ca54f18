// Package store persists Baby Steps domain records in PostgreSQL.
//
// All stores share a single pgx connection pool and use plain SQL. Every
// query that reads or mutates user data is scoped by the owning user so a
// caller can never reach another account's records. Row absence is
// reported as ErrNotFound rather than pgx.ErrNoRows so callers do not
// depend on the driver.
package store
