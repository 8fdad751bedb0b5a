package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	assert.Equal(t, ledger.StrongConsistency, ledger.GetConsistencyLevel(context.Background()))
}

func Test_GetConsistencyLevel_ReadsTheLevelFromTheContext(t *testing.T) {
	eventualCtx := ledger.WithEventualConsistency(context.Background())
	strongCtx := ledger.WithStrongConsistency(eventualCtx)

	assert.Equal(t, ledger.EventualConsistency, ledger.GetConsistencyLevel(eventualCtx))
	assert.Equal(t, ledger.StrongConsistency, ledger.GetConsistencyLevel(strongCtx))
}

func Test_ConsistencyLevel_String(t *testing.T) {
	assert.Equal(t, "strong", ledger.StrongConsistency.String())
	assert.Equal(t, "eventual", ledger.EventualConsistency.String())
	assert.Equal(t, "unknown", ledger.ConsistencyLevel(99).String())
}
