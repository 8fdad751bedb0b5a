package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/postgresengine"
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/ledger/helper"                         //nolint:revive
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/observability/testdoubles"             //nolint:revive
	. "github.com/AntonStoeckl/dynamic-assetledger-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_ConsistencyRouting_DefaultsToStrongConsistency(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tracingCollector := NewTracingCollectorSpy(true)
	wrapper := CreateWrapperWithTestConfig(t, postgresengine.WithTracing(tracingCollector))
	defer wrapper.Close()
	as := wrapper.GetAssetStore()

	// act
	_, _, err := as.Get(ctxWithTimeout, GivenUniqueAssetID(t))

	// assert
	assert.NoError(t, err)
	assert.True(t, tracingCollector.HasSpanRecordForName("assetstore.get").
		WithStartAttribute("consistency", "strong").
		Assert(), "get span should carry the default consistency level")
}

func Test_ConsistencyRouting_EventualConsistency_WithoutReplica_ReadsThePrimary(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tracingCollector := NewTracingCollectorSpy(true)
	wrapper := CreateWrapperWithTestConfig(t, postgresengine.WithTracing(tracingCollector))
	defer wrapper.Close()
	as := wrapper.GetAssetStore()

	// arrange
	CleanUp(t, wrapper)
	assetID := GivenUniqueAssetID(t)
	GivenAssetWasPut(t, ctxWithTimeout, as, assetID, FixtureValuePayload(t, 7))
	eventualCtx := ledger.WithEventualConsistency(ctxWithTimeout)

	// act
	asset, found, err := as.Get(eventualCtx, assetID)

	// assert
	assert.NoError(t, err)
	assert.True(t, found, "without a replica eventual reads must be served by the primary")
	assert.Equal(t, ledger.AgeUint(1), asset.Age)
	assert.True(t, tracingCollector.HasSpanRecordForName("assetstore.get").
		WithStartAttribute("consistency", "eventual").
		Assert(), "get span should carry the eventual consistency level")
}
