// Package helper provides engine-agnostic test data builders for the asset ledger.
//
// It contains the Given... helpers that arrange assets in any ledger.AccessorPutter and the
// fixture payloads shared by the asset store, contract and wrapper test suites.
package helper
