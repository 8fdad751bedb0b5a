package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

func Test_IsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, expected: true},
		{name: "wrapped pgx unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), expected: true},
		{name: "pgx other error", err: &pgconn.PgError{Code: "42P01"}, expected: false},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, expected: true},
		{name: "joined pq unique violation", err: errors.Join(ledger.ErrPuttingAssetFailed, &pq.Error{Code: "23505"}), expected: true},
		{name: "pq other error", err: &pq.Error{Code: "23503"}, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsUniqueViolation(tc.err))
		})
	}
}

func Test_ReadsFromReplica(t *testing.T) {
	strongCtx := context.Background()
	eventualCtx := ledger.WithEventualConsistency(context.Background())

	assert.False(t, readsFromReplica(strongCtx, true), "strong consistency must read from the primary")
	assert.False(t, readsFromReplica(eventualCtx, false), "without a replica reads must go to the primary")
	assert.True(t, readsFromReplica(eventualCtx, true), "eventual consistency with a replica should read from the replica")
}
