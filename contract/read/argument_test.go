package read_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/read"
)

func Test_ParseArgument(t *testing.T) {
	testCases := []struct {
		name            string
		raw             string
		expectedKey     int64
		expectedAssetID string
		expectedErr     error
		expectedMessage string
	}{
		{name: "positive key", raw: `{"key": 42}`, expectedKey: 42, expectedAssetID: "42"},
		{name: "negative key", raw: `{"key": -1}`, expectedKey: -1, expectedAssetID: "-1"},
		{name: "zero key", raw: `{"key": 0}`, expectedKey: 0, expectedAssetID: "0"},
		{name: "max key", raw: `{"key": 9223372036854775807}`, expectedKey: math.MaxInt64, expectedAssetID: "9223372036854775807"},
		{name: "min key", raw: `{"key": -9223372036854775808}`, expectedKey: math.MinInt64, expectedAssetID: "-9223372036854775808"},
		{name: "additional fields are ignored", raw: `{"other": "x", "key": 5}`, expectedKey: 5, expectedAssetID: "5"},
		{name: "empty object", raw: `{}`, expectedErr: contract.ErrMissingArgument, expectedMessage: "required key 'key' is missing"},
		{name: "other fields only", raw: `{"keys": 1}`, expectedErr: contract.ErrMissingArgument, expectedMessage: "required key 'key' is missing"},
		{name: "empty input", raw: ``, expectedErr: contract.ErrMissingArgument, expectedMessage: "required key 'key' is missing"},
		{name: "null input", raw: ` null `, expectedErr: contract.ErrMissingArgument, expectedMessage: "required key 'key' is missing"},
		{name: "array input", raw: `[42]`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "argument must be a json object"},
		{name: "invalid json", raw: `{"key": `, expectedErr: contract.ErrInvalidArgument, expectedMessage: "argument must be a json object"},
		{name: "trailing garbage", raw: `{"key":1} xyz`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "argument must be a json object"},
		{name: "trailing bracket", raw: `{"key":1}]`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "argument must be a json object"},
		{name: "two objects", raw: `{"key":1},{"key":2}`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "argument must be a json object"},
		{name: "surrounding whitespace", raw: " {\"key\": 3}\n", expectedKey: 3, expectedAssetID: "3"},
		{name: "string key", raw: `{"key": "42"}`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "key must be an integer"},
		{name: "null key", raw: `{"key": null}`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "key must be an integer"},
		{name: "fractional key", raw: `{"key": 4.2}`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "key must be an integer"},
		{name: "overflowing key", raw: `{"key": 9223372036854775808}`, expectedErr: contract.ErrInvalidArgument, expectedMessage: "key must be an integer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			argument, err := read.ParseArgument(json.RawMessage(tc.raw))

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.EqualError(t, err, tc.expectedMessage)
				assert.True(t, contract.IsContextError(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedKey, argument.Key)
			assert.Equal(t, tc.expectedAssetID, argument.AssetID())
		})
	}
}

func Test_BuildArgument_RoundTrips(t *testing.T) {
	for _, key := range []int64{0, 42, -1, math.MaxInt64, math.MinInt64} {
		// act
		argument, err := read.ParseArgument(read.BuildArgument(key))

		// assert
		assert.NoError(t, err)
		assert.Equal(t, key, argument.Key)
	}
}
