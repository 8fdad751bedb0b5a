package read

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

const (
	argumentFieldKey = "key"

	msgMissingKey        = "required key 'key' is missing"
	msgArgumentNotObject = "argument must be a json object"
	msgKeyNotInteger     = "key must be an integer"
)

// Argument is the validated argument of the read contract.
type Argument struct {
	Key int64
}

// BuildArgument creates the raw JSON argument for the given key.
func BuildArgument(key int64) json.RawMessage {
	return json.RawMessage(`{"` + argumentFieldKey + `":` + strconv.FormatInt(key, 10) + `}`)
}

// ParseArgument validates a raw JSON argument.
// An empty or null argument is treated like the empty object.
func ParseArgument(raw json.RawMessage) (Argument, error) {
	if isEmptyArgument(raw) {
		return Argument{}, contract.NewContextError(contract.ErrMissingArgument, msgMissingKey)
	}

	if !ledger.IsJSONObject(raw) {
		return Argument{}, contract.NewContextError(contract.ErrInvalidArgument, msgArgumentNotObject)
	}

	key, err := ledger.IntField(raw, argumentFieldKey)
	switch {
	case errors.Is(err, ledger.ErrFieldMissing):
		return Argument{}, contract.NewContextError(contract.ErrMissingArgument, msgMissingKey)
	case err != nil:
		return Argument{}, contract.NewContextError(contract.ErrInvalidArgument, msgKeyNotInteger).WithCause(err)
	}

	return Argument{Key: key}, nil
}

// AssetID returns the canonical asset id for the key.
func (a Argument) AssetID() string {
	return strconv.FormatInt(a.Key, 10)
}

func isEmptyArgument(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
