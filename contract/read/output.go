package read

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
)

const (
	outputFieldValue = "value"
)

// Output is the typed form of a present read result.
type Output struct {
	Value int64 `json:"value"`
}

// OutputFrom decodes a read result.
// It returns found == false, and no error, for the absent result.
func OutputFrom(result contract.Result) (Output, bool, error) {
	if !result.IsPresent() {
		return Output{}, false, nil
	}

	value, err := result.IntField(outputFieldValue)
	if err != nil {
		return Output{}, true, err
	}

	return Output{Value: value}, true, nil
}

func encodeOutput(output Output) (json.RawMessage, error) {
	return jsoniter.ConfigFastest.Marshal(output)
}
