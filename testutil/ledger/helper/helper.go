package helper

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

// GivenUniqueAssetID generates a unique asset id for testing.
func GivenUniqueAssetID(t testing.TB) string {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id.String()
}

// GivenUniqueIntKey generates a random int64 key, negative in about half of the cases,
// so that tests exercise the signed canonical string form of keys.
func GivenUniqueIntKey(_ testing.TB) int64 {
	key := rand.Int64() //nolint:gosec // test data
	if rand.IntN(2) == 0 {
		key = -key
	}

	return key
}

// AssetIDForKey returns the canonical asset id for an integer key.
func AssetIDForKey(key int64) string {
	return strconv.FormatInt(key, 10)
}

// FixtureValuePayload builds the JSON object payload {"value": value}.
func FixtureValuePayload(t testing.TB, value int64) json.RawMessage {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(map[string]int64{"value": value})
	require.NoError(t, err, "error in arranging test data")

	return payload
}

// FixturePayload builds a JSON object payload from arbitrary fields.
func FixturePayload(t testing.TB, fields map[string]any) json.RawMessage {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(fields)
	require.NoError(t, err, "error in arranging test data")

	return payload
}

// GivenAssetWasPut appends a new version of the asset and returns the age it got.
func GivenAssetWasPut(
	t testing.TB,
	ctx context.Context, //nolint:revive
	store ledger.AccessorPutter,
	assetID string,
	data json.RawMessage,
) ledger.AgeUint {

	asset, found, err := store.Get(ctx, assetID)
	require.NoError(t, err, "error in arranging test data")

	latestAge := ledger.AgeUint(0)
	if found {
		latestAge = asset.Age
	}

	err = store.Put(ctx, assetID, latestAge, data)
	require.NoError(t, err, "error in arranging test data")

	return latestAge + 1
}

// GivenAssetVersionsWerePut appends one version per payload, in order, and returns the latest age.
func GivenAssetVersionsWerePut(
	t testing.TB,
	ctx context.Context, //nolint:revive
	store ledger.AccessorPutter,
	assetID string,
	payloads ...json.RawMessage,
) ledger.AgeUint {

	latestAge := ledger.AgeUint(0)
	for _, payload := range payloads {
		latestAge = GivenAssetWasPut(t, ctx, store, assetID, payload)
	}

	return latestAge
}
