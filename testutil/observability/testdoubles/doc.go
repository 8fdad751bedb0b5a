// Package testdoubles provides test doubles (spies) for the ledger observability interfaces.
//
// This package contains spy implementations used by the asset store and contract tests:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans with their start and end attributes
//   - ContextualLoggerSpy: captures context-aware logging calls
//   - LogHandlerSpy: captures slog records, for plain slog.Logger based logging
//
// These test doubles enable testing of observability instrumentation
// without requiring actual telemetry backends.
package testdoubles
