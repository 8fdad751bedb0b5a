package observable

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

var (
	// ErrNilContract is returned by NewWrapper when there is nothing to wrap.
	ErrNilContract = errors.New("contract to wrap must not be nil")

	// ErrEmptyContractName is returned by NewWrapper when the contract name is empty.
	ErrEmptyContractName = errors.New("contract name must not be empty")
)

// Wrapper instruments a contract.Contract with metrics, tracing, and logging.
// It is itself a contract.Contract and safe for concurrent use if the wrapped contract is.
type Wrapper struct {
	core             contract.Contract
	contractName     string
	metricsCollector ledger.MetricsCollector
	tracingCollector ledger.TracingCollector
	contextualLogger ledger.ContextualLogger
	logger           ledger.Logger
}

// NewWrapper creates a new observable wrapper around the core contract.
func NewWrapper(contractName string, core contract.Contract, opts ...Option) (*Wrapper, error) {
	if core == nil {
		return nil, ErrNilContract
	}

	if contractName == "" {
		return nil, ErrEmptyContractName
	}

	wrapper := &Wrapper{
		core:         core,
		contractName: contractName,
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Invoke delegates to the wrapped contract and records the outcome.
func (w *Wrapper) Invoke(
	ctx context.Context,
	accessor ledger.Accessor,
	argument json.RawMessage,
	property json.RawMessage,
) (contract.Result, error) {

	invokeStart := time.Now()
	invocationID := newInvocationID()

	ctx, span := startSpan(ctx, w.tracingCollector, w.contractName, invocationID)
	logStart(ctx, w.logger, w.contextualLogger, w.contractName, invocationID)

	result, err := w.core.Invoke(ctx, accessor, argument, property)

	duration := time.Since(invokeStart)
	status := classifyOutcome(result, err)

	recordMetrics(ctx, w.metricsCollector, w.contractName, status, duration)
	finishSpan(w.tracingCollector, span, status, duration, err)
	logOutcome(ctx, w.logger, w.contextualLogger, w.contractName, invocationID, status, duration, err)

	return result, err
}

func newInvocationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// Option defines a functional option for configuring Wrapper.
type Option func(*Wrapper) error

// WithMetrics sets the metrics collector for the Wrapper.
func WithMetrics(collector ledger.MetricsCollector) Option {
	return func(w *Wrapper) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Wrapper.
func WithTracing(collector ledger.TracingCollector) Option {
	return func(w *Wrapper) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithContextualLogging sets the contextual logger for the Wrapper.
// It takes precedence over a basic logger.
func WithContextualLogging(logger ledger.ContextualLogger) Option {
	return func(w *Wrapper) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithLogging sets the basic logger for the Wrapper.
func WithLogging(logger ledger.Logger) Option {
	return func(w *Wrapper) error {
		w.logger = logger
		return nil
	}
}

var _ contract.Contract = (*Wrapper)(nil)
