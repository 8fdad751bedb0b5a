package read

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

// Name identifies the read contract, e.g. in logs and metrics.
const Name = "read"

// Contract is the read contract. The zero value is ready to use.
type Contract struct{}

// New creates the read contract.
func New() Contract {
	return Contract{}
}

// Invoke looks up the asset stored under the argument's key and returns {"value": v}.
// The property is ignored.
func (Contract) Invoke(
	ctx context.Context,
	accessor ledger.Accessor,
	argument json.RawMessage,
	_ json.RawMessage,
) (contract.Result, error) {

	if accessor == nil {
		return contract.NoResult(), contract.ErrNilLedger
	}

	arg, err := ParseArgument(argument)
	if err != nil {
		return contract.NoResult(), err
	}

	asset, found, err := accessor.Get(ctx, arg.AssetID())
	if err != nil {
		return contract.NoResult(), err
	}

	if !found {
		return contract.NoResult(), nil
	}

	value, err := asset.IntField(outputFieldValue)
	if err != nil {
		return contract.NoResult(), contract.NewContextError(
			contract.ErrMalformedAsset,
			fmt.Sprintf("asset '%s' has no integer field '%s'", asset.ID, outputFieldValue),
		).WithCause(err)
	}

	object, err := encodeOutput(Output{Value: value})
	if err != nil {
		return contract.NoResult(), err
	}

	return contract.Some(object), nil
}

var _ contract.Contract = Contract{}
