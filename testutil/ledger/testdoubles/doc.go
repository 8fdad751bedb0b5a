// Package testdoubles provides in-memory test doubles for the ledger capabilities.
//
// InMemoryLedger implements ledger.Accessor and ledger.Putter with the same versioning
// semantics as the PostgreSQL asset store, so contract tests can run without a database.
// It counts calls and supports error injection for failure-path tests.
package testdoubles
