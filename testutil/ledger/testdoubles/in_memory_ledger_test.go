package testdoubles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
	"github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/testdoubles"
)

func Test_InMemoryLedger_Put_Rejects_TrailingData(t *testing.T) {
	// setup
	ctx := context.Background()
	store := testdoubles.NewInMemoryLedger()

	// act
	err := store.Put(ctx, "1", 0, []byte(`{"value":7} trailing`))

	// assert
	assert.ErrorIs(t, err, ledger.ErrInvalidAssetDataJSON)
	assert.Equal(t, 0, store.VersionCount("1"))
}

func Test_InMemoryLedger_Put_Then_Get_Latest(t *testing.T) {
	// setup
	ctx := context.Background()
	store := testdoubles.NewInMemoryLedger()

	// arrange
	require.NoError(t, store.Put(ctx, "1", 0, []byte(`{"value":1}`)))
	require.NoError(t, store.Put(ctx, "1", 1, []byte(`{"value":2}`)))

	// act
	asset, found, err := store.Get(ctx, "1")
	conflictErr := store.Put(ctx, "1", 1, []byte(`{"value":3}`))

	// assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ledger.AgeUint(2), asset.Age)
	assert.JSONEq(t, `{"value":2}`, string(asset.Data))
	assert.ErrorIs(t, conflictErr, ledger.ErrConcurrencyConflict)
}
