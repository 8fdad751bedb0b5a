package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/read"
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/helper"                         //nolint:revive
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_ReadContract_Against_AssetStore(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	as := wrapper.GetAssetStore()
	readContract := read.New()

	// arrange
	key := GivenUniqueIntKey(t)
	absentKey := GivenUniqueIntKey(t)
	GivenAssetVersionsWerePut(t, ctxWithTimeout, as, AssetIDForKey(key),
		FixtureValuePayload(t, 1),
		FixturePayload(t, map[string]any{"value": 7, "owner": "alice"}),
	)

	// act
	found, foundErr := readContract.Invoke(ctxWithTimeout, as, read.BuildArgument(key), nil)
	absent, absentErr := readContract.Invoke(ctxWithTimeout, as, read.BuildArgument(absentKey), nil)
	_, missingErr := readContract.Invoke(ctxWithTimeout, as, []byte(`{}`), nil)

	// assert
	require.NoError(t, foundErr)
	assert.JSONEq(t, `{"value":7}`, string(found.Object()))

	require.NoError(t, absentErr)
	assert.False(t, absent.IsPresent())

	assert.ErrorIs(t, missingErr, contract.ErrMissingArgument)
	assert.EqualError(t, missingErr, "required key 'key' is missing")
}

func Test_ReadContract_Against_AssetStore_With_Malformed_Asset(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	as := wrapper.GetAssetStore()

	// arrange
	key := GivenUniqueIntKey(t)
	GivenAssetWasPut(t, ctxWithTimeout, as, AssetIDForKey(key), FixturePayload(t, map[string]any{"value": "seven"}))

	// act
	result, err := read.New().Invoke(ctxWithTimeout, as, read.BuildArgument(key), nil)

	// assert
	assert.ErrorIs(t, err, contract.ErrMalformedAsset)
	assert.False(t, result.IsPresent())
}
