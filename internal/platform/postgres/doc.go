// Package postgres implements the store interfaces on PostgreSQL using
// database/sql over the pgx driver. Every query against categories and tasks
// is anchored to the owning user's ID before any other predicate; the
// implementations never expose whether a row exists outside that scope.
package postgres
