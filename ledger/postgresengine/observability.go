package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

const (
	metricGetDuration          = "assetstore_get_duration_seconds"
	metricPutDuration          = "assetstore_put_duration_seconds"
	metricAssetsFound          = "assetstore_assets_found_total"
	metricDatabaseErrors       = "assetstore_database_errors_total"
	metricConcurrencyConflicts = "assetstore_concurrency_conflicts_total"

	spanNameGet = "assetstore.get"
	spanNamePut = "assetstore.put"

	spanAttrOperation    = "operation"
	spanAttrAssetID      = "asset_id"
	spanAttrExpectedAge  = "expected_age"
	spanAttrFound        = "found"
	spanAttrConsistency  = "consistency"
	spanAttrDurationMS   = "duration_ms"
	spanAttrErrorType    = "error_type"
	spanAttrRowsAffected = "rows_affected"

	operationGet = "get"
	operationPut = "put"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowScan       = "row_scan"
	errorTypeValidation    = "validation"
	errorTypeCanceled      = "canceled"
	errorTypeTimeout       = "timeout"
)

// classifyContextError maps a failed database call to canceled/timeout when the context explains it.
func classifyContextError(ctx context.Context, fallback string) string {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return errorTypeCanceled
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errorTypeTimeout
	default:
		return fallback
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/*** Logging ***/

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (as *AssetStore) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if as.contextualLogger != nil {
		as.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if as.logger != nil {
		as.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (as *AssetStore) logOperation(ctx context.Context, action string, args ...any) {
	if as.contextualLogger != nil {
		as.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if as.logger != nil {
		as.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (as *AssetStore) logWarn(ctx context.Context, message string, err error) {
	if as.contextualLogger != nil {
		as.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
		return
	}

	if as.logger != nil {
		as.logger.Warn(message, logAttrError, err.Error())
	}
}

// logError logs error information at the error level if a logger is configured.
func (as *AssetStore) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {

	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if as.contextualLogger != nil {
		as.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if as.logger != nil {
		as.logger.Error(message, allArgs...)
	}
}

/*** Metrics ***/

func (as *AssetStore) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if as.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := as.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	as.metricsCollector.RecordDuration(metric, duration, labels)
}

func (as *AssetStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if as.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := as.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	as.metricsCollector.IncrementCounter(metric, labels)
}

/*** Tracing ***/

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (as *AssetStore) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, SpanContext) {

	if as.tracingCollector != nil {
		return as.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (as *AssetStore) finishTraceSpan(
	span SpanContext,
	status string,
	duration time.Duration,
	attrs map[string]string,
) {

	if as.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))
	as.tracingCollector.FinishSpan(span, status, attrs)
}

func (as *AssetStore) startGetSpan(ctx context.Context, assetID string) (context.Context, SpanContext) {
	return as.startTraceSpan(ctx, spanNameGet, map[string]string{
		spanAttrOperation:   operationGet,
		spanAttrAssetID:     assetID,
		spanAttrConsistency: ledger.GetConsistencyLevel(ctx).String(),
	})
}

func (as *AssetStore) startPutSpan(
	ctx context.Context,
	assetID string,
	expectedLatestAge ledger.AgeUint,
) (context.Context, SpanContext) {

	return as.startTraceSpan(ctx, spanNamePut, map[string]string{
		spanAttrOperation:   operationPut,
		spanAttrAssetID:     assetID,
		spanAttrExpectedAge: strconv.FormatUint(uint64(expectedLatestAge), 10),
	})
}

/*** Outcome recording ***/

func (as *AssetStore) recordGetSuccess(ctx context.Context, span SpanContext, found bool, duration time.Duration) {
	foundLabel := strconv.FormatBool(found)

	as.recordDuration(ctx, metricGetDuration, duration, map[string]string{
		spanAttrOperation: operationGet,
		"status":          statusSuccess,
	})

	as.incrementCounter(ctx, metricAssetsFound, map[string]string{
		spanAttrOperation: operationGet,
		spanAttrFound:     foundLabel,
	})

	as.finishTraceSpan(span, statusSuccess, duration, map[string]string{spanAttrFound: foundLabel})
}

func (as *AssetStore) recordGetError(ctx context.Context, span SpanContext, errorType string, duration time.Duration) {
	as.recordDuration(ctx, metricGetDuration, duration, map[string]string{
		spanAttrOperation: operationGet,
		"status":          statusError,
	})

	as.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operationGet,
		"status":          statusError,
		spanAttrErrorType: errorType,
	})

	as.finishTraceSpan(span, statusError, duration, map[string]string{spanAttrErrorType: errorType})
}

func (as *AssetStore) recordPutSuccess(ctx context.Context, span SpanContext, duration time.Duration) {
	as.recordDuration(ctx, metricPutDuration, duration, map[string]string{
		spanAttrOperation: operationPut,
		"status":          statusSuccess,
	})

	as.finishTraceSpan(span, statusSuccess, duration, nil)
}

func (as *AssetStore) recordPutError(ctx context.Context, span SpanContext, errorType string, duration time.Duration) {
	as.recordDuration(ctx, metricPutDuration, duration, map[string]string{
		spanAttrOperation: operationPut,
		"status":          statusError,
	})

	as.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operationPut,
		"status":          statusError,
		spanAttrErrorType: errorType,
	})

	as.finishTraceSpan(span, statusError, duration, map[string]string{spanAttrErrorType: errorType})
}

func (as *AssetStore) recordPutConflict(
	ctx context.Context,
	span SpanContext,
	assetID string,
	expectedLatestAge ledger.AgeUint,
	rowsAffected int64,
	duration time.Duration,
) {

	as.logOperation(ctx,
		logMsgConcurrencyConflict,
		logAttrAssetID, assetID,
		logAttrExpectedAge, expectedLatestAge,
		logAttrRowsAffected, rowsAffected,
	)

	as.recordDuration(ctx, metricPutDuration, duration, map[string]string{
		spanAttrOperation: operationPut,
		"status":          statusConflict,
	})

	as.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationPut,
		"conflict_type":   "concurrency",
	})

	as.finishTraceSpan(span, statusConflict, duration, map[string]string{
		spanAttrRowsAffected: strconv.FormatInt(rowsAffected, 10),
	})
}
