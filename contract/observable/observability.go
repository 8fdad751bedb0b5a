package observable

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

const (
	// ContractInvokeDurationMetric tracks contract invocation duration (OpenTelemetry-compatible).
	ContractInvokeDurationMetric = "contract_invoke_duration_seconds"

	// ContractInvokeCallsMetric tracks total contract invocations.
	ContractInvokeCallsMetric = "contract_invoke_calls_total"

	// StatusSuccess represents an invocation that returned a present result.
	StatusSuccess = "success"

	// StatusAbsent represents an invocation that completed without a result.
	StatusAbsent = "absent"

	// StatusRejected represents an invocation that failed with a caller-visible contract error.
	StatusRejected = "rejected"

	// StatusError represents an invocation that failed for any other reason.
	StatusError = "error"

	// StatusCanceled represents an invocation whose context was canceled.
	StatusCanceled = "canceled"

	// StatusTimeout represents an invocation whose context deadline was exceeded.
	StatusTimeout = "timeout"

	// SpanNameContractInvoke is the name of the span covering one invocation.
	SpanNameContractInvoke = "contract.invoke"

	// LogMsgInvocationStarted is logged before the wrapped contract is invoked.
	LogMsgInvocationStarted = "contract invocation started"

	// LogMsgInvocationCompleted is logged for success and absent outcomes.
	LogMsgInvocationCompleted = "contract invocation completed"

	// LogMsgInvocationRejected is logged for caller-visible contract errors.
	LogMsgInvocationRejected = "contract invocation rejected"

	// LogMsgInvocationFailed is logged for all other errors.
	LogMsgInvocationFailed = "contract invocation failed"

	// LogAttrContract carries the contract name in logs, span attributes and metric labels.
	LogAttrContract = "contract"

	// LogAttrInvocationID carries the UUIDv7 shared by all logs and the span of one invocation.
	LogAttrInvocationID = "invocation_id"

	// LogAttrStatus carries the classified outcome, one of the Status constants.
	LogAttrStatus = "status"

	// LogAttrDurationMS carries the invocation duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError carries the error message of failed or rejected invocations.
	LogAttrError = "error"
)

// classifyOutcome maps the invocation outcome to one of the status constants.
func classifyOutcome(result contract.Result, err error) string {
	switch {
	case err == nil && result.IsPresent():
		return StatusSuccess
	case err == nil:
		return StatusAbsent
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case contract.IsContextError(err):
		return StatusRejected
	default:
		return StatusError
	}
}

func buildLabels(contractName, status string) map[string]string {
	return map[string]string{
		LogAttrContract: contractName,
		LogAttrStatus:   status,
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(duration))
}

func recordMetrics(
	ctx context.Context,
	collector ledger.MetricsCollector,
	contractName string,
	status string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := buildLabels(contractName, status)

	if contextualCollector, ok := collector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, ContractInvokeDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, ContractInvokeCallsMetric, labels)

		return
	}

	collector.RecordDuration(ContractInvokeDurationMetric, duration, labels)
	collector.IncrementCounter(ContractInvokeCallsMetric, labels)
}

func startSpan(
	ctx context.Context,
	tracingCollector ledger.TracingCollector,
	contractName string,
	invocationID string,
) (context.Context, ledger.SpanContext) {

	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameContractInvoke, map[string]string{
		LogAttrContract:     contractName,
		LogAttrInvocationID: invocationID,
	})
}

func finishSpan(
	tracingCollector ledger.TracingCollector,
	span ledger.SpanContext,
	status string,
	duration time.Duration,
	err error,
) {

	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

func logStart(
	ctx context.Context,
	logger ledger.Logger,
	contextualLogger ledger.ContextualLogger,
	contractName string,
	invocationID string,
) {

	args := []any{LogAttrContract, contractName, LogAttrInvocationID, invocationID}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgInvocationStarted, args...)
	} else if logger != nil {
		logger.Info(LogMsgInvocationStarted, args...)
	}
}

func logOutcome(
	ctx context.Context,
	logger ledger.Logger,
	contextualLogger ledger.ContextualLogger,
	contractName string,
	invocationID string,
	status string,
	duration time.Duration,
	err error,
) {

	args := []any{
		LogAttrContract, contractName,
		LogAttrInvocationID, invocationID,
		LogAttrStatus, status,
		LogAttrDurationMS, toMilliseconds(duration),
	}

	if err != nil {
		args = append(args, LogAttrError, err.Error())
	}

	switch status {
	case StatusSuccess, StatusAbsent:
		if contextualLogger != nil {
			contextualLogger.InfoContext(ctx, LogMsgInvocationCompleted, args...)
		} else if logger != nil {
			logger.Info(LogMsgInvocationCompleted, args...)
		}
	case StatusRejected:
		if contextualLogger != nil {
			contextualLogger.WarnContext(ctx, LogMsgInvocationRejected, args...)
		} else if logger != nil {
			logger.Warn(LogMsgInvocationRejected, args...)
		}
	default:
		if contextualLogger != nil {
			contextualLogger.ErrorContext(ctx, LogMsgInvocationFailed, args...)
		} else if logger != nil {
			logger.Error(LogMsgInvocationFailed, args...)
		}
	}
}
