// Package oteladapters provides OpenTelemetry implementations of the ledger observability interfaces.
//
// Both the asset store (postgresengine) and the contract wrapper (contract/observable) accept
// these adapters directly:
//
//	tracer := otel.Tracer("assetledger")
//	meter := otel.Meter("assetledger")
//
//	store, err := postgresengine.NewAssetStoreFromPGXPool(pool,
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("assetledger")),
//	)
//
// The MetricsCollector implements ledger.ContextualMetricsCollector, so exemplars get correlated
// with the active span.
package oteladapters
