package postgresengine

import (
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

// Logger is the plain logger the AssetStore reports to, see ledger.Logger.
type Logger = ledger.Logger

// MetricsCollector receives the AssetStore's performance and operational metrics, see ledger.MetricsCollector.
type MetricsCollector = ledger.MetricsCollector

// SpanContext represents an active tracing span, see ledger.SpanContext.
type SpanContext = ledger.SpanContext

// TracingCollector receives spans for AssetStore operations, see ledger.TracingCollector.
type TracingCollector = ledger.TracingCollector

// ContextualLogger is the context-aware logger the AssetStore reports to, see ledger.ContextualLogger.
type ContextualLogger = ledger.ContextualLogger

// Option defines a functional option for configuring AssetStore.
type Option func(*AssetStore) error

// WithTableName sets the table name for the AssetStore.
func WithTableName(tableName string) Option {
	return func(as *AssetStore) error {
		if tableName == "" {
			return ledger.ErrEmptyTableName
		}

		as.assetTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the AssetStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Loaded/put assets, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(as *AssetStore) error {
		as.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the AssetStore.
// The collector receives get/put durations, found/not-found counts, concurrency conflicts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(as *AssetStore) error {
		as.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the AssetStore.
func WithTracing(collector TracingCollector) Option {
	return func(as *AssetStore) error {
		as.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the AssetStore.
// When both loggers are configured, the contextual logger takes precedence.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(as *AssetStore) error {
		as.contextualLogger = logger
		return nil
	}
}
