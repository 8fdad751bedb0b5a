package contract

import (
	"context"
	"encoding/json"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

// Contract is implemented by every contract the ledger runtime can invoke.
//
// Implementations must be stateless between invocations and safe for concurrent use.
// The property object is passed for interface uniformity, contracts that don't need it ignore it.
type Contract interface {
	Invoke(
		ctx context.Context,
		ledger ledger.Accessor,
		argument json.RawMessage,
		property json.RawMessage,
	) (Result, error)
}

// Func adapts an ordinary function to the Contract interface.
type Func func(
	ctx context.Context,
	ledger ledger.Accessor,
	argument json.RawMessage,
	property json.RawMessage,
) (Result, error)

// Invoke calls f.
func (f Func) Invoke(
	ctx context.Context,
	ledger ledger.Accessor,
	argument json.RawMessage,
	property json.RawMessage,
) (Result, error) {

	return f(ctx, ledger, argument, property)
}
