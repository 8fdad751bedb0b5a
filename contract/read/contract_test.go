package read_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/read"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/helper"      //nolint:revive
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/testdoubles" //nolint:revive
)

func Test_Read_When_TheKey_IsMissing(t *testing.T) {
	// setup
	store := NewInMemoryLedger()

	// act
	result, err := read.New().Invoke(context.Background(), store, json.RawMessage(`{}`), nil)

	// assert
	assert.ErrorIs(t, err, contract.ErrMissingArgument)
	assert.EqualError(t, err, "required key 'key' is missing")
	assert.False(t, result.IsPresent())
	assert.Empty(t, store.GetCalls(), "the ledger must not be touched for invalid arguments")
}

func Test_Read_When_NoAsset_IsStoredUnderTheKey(t *testing.T) {
	// setup
	store := NewInMemoryLedger()

	// act
	result, err := read.New().Invoke(context.Background(), store, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.NoError(t, err)
	assert.False(t, result.IsPresent())
	assert.Equal(t, "null", result.String())
	assert.Equal(t, []string{"42"}, store.GetCalls())
}

func Test_Read_When_AnAsset_IsStoredUnderTheKey(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()

	// arrange
	GivenAssetWasPut(t, ctx, store, "42", FixtureValuePayload(t, 7))

	// act
	result, err := read.New().Invoke(ctx, store, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.IsPresent())
	assert.JSONEq(t, `{"value": 7}`, string(result.Object()))
}

func Test_Read_With_ANegativeKey(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()

	// arrange
	GivenAssetWasPut(t, ctx, store, "-1", FixtureValuePayload(t, 100))
	GivenAssetWasPut(t, ctx, store, "1", FixtureValuePayload(t, 1))

	// act
	result, err := read.New().Invoke(ctx, store, json.RawMessage(`{"key": -1}`), nil)

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `{"value": 100}`, string(result.Object()))
	assert.Equal(t, []string{"-1"}, store.GetCalls()[2:], "the sign must be preserved in the asset id")
}

func Test_Read_Returns_TheLatestVersion(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()

	// arrange
	GivenAssetVersionsWerePut(t, ctx, store, "42",
		FixtureValuePayload(t, 1),
		FixtureValuePayload(t, 2),
	)

	// act
	result, err := read.New().Invoke(ctx, store, read.BuildArgument(42), nil)

	// assert
	assert.NoError(t, err)
	output, found, outputErr := read.OutputFrom(result)
	assert.NoError(t, outputErr)
	assert.True(t, found)
	assert.Equal(t, read.Output{Value: 2}, output)
}

func Test_Read_Returns_ExactlyTheValueField(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()

	// arrange
	GivenAssetWasPut(t, ctx, store, "42", FixturePayload(t, map[string]any{
		"value": 7,
		"owner": "someone",
		"tags":  []string{"a", "b"},
	}))

	// act
	result, err := read.New().Invoke(ctx, store, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `{"value": 7}`, string(result.Object()))
}

func Test_Read_Ignores_TheProperty(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()

	// arrange
	GivenAssetWasPut(t, ctx, store, "42", FixtureValuePayload(t, 7))

	for _, property := range []json.RawMessage{nil, json.RawMessage(`{}`), json.RawMessage(`{"key": 1}`), json.RawMessage(`garbage`)} {
		// act
		result, err := read.New().Invoke(ctx, store, json.RawMessage(`{"key": 42}`), property)

		// assert
		assert.NoError(t, err)
		assert.JSONEq(t, `{"value": 7}`, string(result.Object()))
	}
}

func Test_Read_IsIdempotent(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()
	readContract := read.New()

	// arrange
	key := GivenUniqueIntKey(t)
	GivenAssetWasPut(t, ctx, store, AssetIDForKey(key), FixtureValuePayload(t, 7))

	// act
	first, firstErr := readContract.Invoke(ctx, store, read.BuildArgument(key), nil)
	second, secondErr := readContract.Invoke(ctx, store, read.BuildArgument(key), nil)

	// assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.VersionCount(AssetIDForKey(key)), "the contract must not write")
}

func Test_Read_When_TheStoredAsset_IsMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "value missing", payload: `{"amount": 7}`},
		{name: "value is a string", payload: `{"value": "7"}`},
		{name: "value is fractional", payload: `{"value": 7.5}`},
		{name: "value is null", payload: `{"value": null}`},
		{name: "payload is not an object", payload: `[7]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			store := NewInMemoryLedger()

			// arrange
			store.GivenRawVersion("42", json.RawMessage(tc.payload))

			// act
			result, err := read.New().Invoke(context.Background(), store, json.RawMessage(`{"key": 42}`), nil)

			// assert
			assert.ErrorIs(t, err, contract.ErrMalformedAsset)
			assert.True(t, contract.IsContextError(err))
			assert.False(t, result.IsPresent())
		})
	}
}

func Test_Read_Propagates_LedgerFailures(t *testing.T) {
	// setup
	ledgerErr := errors.Join(ledger.ErrQueryingAssetFailed, errors.New("connection refused"))
	store := NewInMemoryLedger().FailGetWith(ledgerErr)

	// act
	result, err := read.New().Invoke(context.Background(), store, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.Same(t, ledgerErr, err)
	assert.ErrorIs(t, err, ledger.ErrQueryingAssetFailed)
	assert.False(t, contract.IsContextError(err))
	assert.False(t, result.IsPresent())
}

func Test_Read_Propagates_ContextCancellation(t *testing.T) {
	// setup
	store := NewInMemoryLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := read.New().Invoke(ctx, store, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Read_Without_ALedger(t *testing.T) {
	// act
	_, err := read.New().Invoke(context.Background(), nil, json.RawMessage(`{"key": 42}`), nil)

	// assert
	assert.ErrorIs(t, err, contract.ErrNilLedger)
}

func Test_Read_ConcurrentInvocations(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewInMemoryLedger()
	readContract := read.New()

	const numKeys = 50

	// arrange
	for key := int64(-numKeys / 2); key < numKeys/2; key++ {
		GivenAssetWasPut(t, ctx, store, AssetIDForKey(key), FixtureValuePayload(t, key*10))
	}

	var wg sync.WaitGroup
	results := make([]contract.Result, numKeys)
	errs := make([]error, numKeys)

	// act
	for i := 0; i < numKeys; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = readContract.Invoke(ctx, store, read.BuildArgument(int64(i-numKeys/2)), nil)
		}()
	}
	wg.Wait()

	// assert
	for i := 0; i < numKeys; i++ {
		require.NoError(t, errs[i])
		output, found, err := read.OutputFrom(results[i])
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(i-numKeys/2)*10, output.Value)
	}
}

func Test_OutputFrom_AbsentResult(t *testing.T) {
	// act
	output, found, err := read.OutputFrom(contract.NoResult())

	// assert
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, read.Output{}, output)
}
