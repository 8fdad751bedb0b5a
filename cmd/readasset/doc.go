// Command readasset invokes the read contract against a PostgreSQL asset ledger and prints the result.
//
// Usage:
//
//	readasset -key 42 [-dsn postgres://...] [-replica-dsn postgres://...] [-table assets]
//	          [-adapter pgx.pool|sql.db|sqlx.db] [-eventual] [-debug] [-timeout 5s] [-otel]
//
// The result is printed as JSON on stdout, {"value":7} when the asset exists and null when it does not.
// Logs go to stderr as JSON. The exit code is 1 when the invocation fails and 2 on invalid flags.
//
// The DSN defaults to $ASSETLEDGER_DSN. With -otel, traces and metrics are exported via OTLP gRPC to
// $OTEL_TRACES_ENDPOINT and $OTEL_METRICS_ENDPOINT (defaults localhost:4319 and localhost:4317).
package main
