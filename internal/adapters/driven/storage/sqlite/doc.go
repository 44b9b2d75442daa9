// Package sqlite provides the SQLite-backed durable cache tier.
//
// Result sets are stored as compact JSON blobs keyed by the namespaced
// query. The database uses WAL mode and embedded, versioned migrations.
package sqlite
