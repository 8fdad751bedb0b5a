// Package config provides PostgreSQL database configuration for asset store testing.
//
// This package contains factory functions for creating database connections
// using the asset store's supported PostgreSQL adapters (pgx.Pool, sql.DB, sqlx.DB)
// with pre-configured single-node and primary/replica DSNs.
//
// The DSNs can be overridden with the ASSETLEDGER_TEST_DSN, ASSETLEDGER_TEST_PRIMARY_DSN
// and ASSETLEDGER_TEST_REPLICA_DSN environment variables.
package config
