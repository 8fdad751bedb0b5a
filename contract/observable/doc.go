// Package observable provides a wrapper that instruments any contract.Contract with
// observability (metrics, tracing, logging) while keeping the contract itself pure.
//
// The wrapper is applied externally at wiring time:
//
//	// 1. Create the pure contract
//	core := read.New()
//
//	// 2. Wrap with observability (external, explicit)
//	wrapped, err := observable.NewWrapper(
//		read.Name,
//		core,
//		observable.WithMetrics(metricsCollector),
//		observable.WithTracing(tracingCollector),
//		observable.WithContextualLogging(contextualLogger),
//	)
//
//	// 3. Invoke as usual
//	result, err := wrapped.Invoke(ctx, store, argument, nil)
//
// Every invocation gets a UUIDv7 invocation id that is attached to all its log records and its span.
// Outcomes are classified as success, absent, rejected (caller-visible contract errors),
// canceled, timeout or error. The wrapped contract's result and error are returned unchanged.
package observable
