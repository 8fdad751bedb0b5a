package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/observable"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/read"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/oteladapters"
	"github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/testdoubles"
)

func Test_ReadContract_WithOTelAdapters(t *testing.T) {
	// setup
	ctx := context.Background()
	tracing, exporter := newTracingCollector()
	metrics, reader := newMetricsCollector()

	wrapper, err := observable.NewWrapper(read.Name, read.New(),
		observable.WithTracing(tracing),
		observable.WithMetrics(metrics),
	)
	require.NoError(t, err)

	// arrange
	ledger := testdoubles.NewInMemoryLedger()
	require.NoError(t, ledger.Put(ctx, "42", 0, []byte(`{"value":7}`)))

	// act
	found, foundErr := wrapper.Invoke(ctx, ledger, read.BuildArgument(42), nil)
	absent, absentErr := wrapper.Invoke(ctx, ledger, read.BuildArgument(-1), nil)

	// assert
	require.NoError(t, foundErr)
	require.NoError(t, absentErr)
	assert.True(t, found.IsPresent())
	assert.False(t, absent.IsPresent())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, observable.SpanNameContractInvoke, spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	invocationID, ok := spanAttribute(spans[0], observable.LogAttrInvocationID)
	assert.True(t, ok)
	assert.NotEmpty(t, invocationID)

	assert.Equal(t, codes.Unset, spans[1].Status.Code)
	status, ok := spanAttribute(spans[1], observable.LogAttrStatus)
	assert.True(t, ok)
	assert.Equal(t, "absent", status)

	sum, ok := findMetric(t, collect(t, reader), observable.ContractInvokeCallsMetric).Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2)
}

func Test_ReadContract_WithOTelAdapters_RejectedArgument(t *testing.T) {
	// setup
	tracing, exporter := newTracingCollector()

	wrapper, err := observable.NewWrapper(read.Name, read.New(), observable.WithTracing(tracing))
	require.NoError(t, err)

	// act
	_, invokeErr := wrapper.Invoke(context.Background(), testdoubles.NewInMemoryLedger(), []byte(`{}`), nil)

	// assert
	require.Error(t, invokeErr)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)

	message, ok := spanAttribute(spans[0], observable.LogAttrError)
	assert.True(t, ok)
	assert.Equal(t, "required key 'key' is missing", message)
}
