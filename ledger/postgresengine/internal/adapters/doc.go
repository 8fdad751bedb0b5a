// Package adapters provide database adapter implementations for the PostgreSQL asset store.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, so the asset store works with any supported connection type.
//
// Each adapter optionally holds a replica connection. Reads go to the replica only when the
// context asks for ledger.EventualConsistency; writes always go to the primary.
package adapters
