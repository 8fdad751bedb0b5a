package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

//nolint:funlen
func Test_BuildAsset_ErrorCases(t *testing.T) {
	validTime := time.Now()

	tests := []struct {
		name        string
		id          string
		data        []byte
		expectedErr error
	}{
		{
			name:        "empty id",
			id:          "",
			data:        []byte(`{"value": 1}`),
			expectedErr: ledger.ErrEmptyAssetID,
		},
		{
			name:        "invalid data JSON",
			id:          "42",
			data:        []byte(`{"value": json}`),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
		{
			name:        "empty data JSON",
			id:          "42",
			data:        []byte(``),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
		{
			name:        "data is an array",
			id:          "42",
			data:        []byte(`[1, 2, 3]`),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
		{
			name:        "data with trailing garbage",
			id:          "42",
			data:        []byte(`{"value":7} trailing`),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
		{
			name:        "data with a second object",
			id:          "42",
			data:        []byte(`{"value":7},{"value":8}`),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
		{
			name:        "data is a scalar",
			id:          "42",
			data:        []byte(`7`),
			expectedErr: ledger.ErrInvalidAssetDataJSON,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := ledger.BuildAsset(tc.id, 1, tc.data, validTime)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, ledger.Asset{}, asset)
		})
	}
}

func Test_BuildAsset_Success(t *testing.T) {
	createdAt := time.Unix(0, 0).UTC()
	data := []byte(`{"value": 7, "owner": "alice"}`)

	asset, err := ledger.BuildAsset("42", 3, data, createdAt)

	assert.NoError(t, err)
	assert.Equal(t, "42", asset.ID)
	assert.Equal(t, ledger.AgeUint(3), asset.Age)
	assert.JSONEq(t, string(data), string(asset.Data))
	assert.Equal(t, createdAt, asset.CreatedAt)
}

func Test_IsJSONObject(t *testing.T) {
	testCases := []struct {
		raw      string
		expected bool
	}{
		{raw: `{}`, expected: true},
		{raw: ` {"value": 7} `, expected: true},
		{raw: `{"value": {"nested": [1, 2]}}`, expected: true},
		{raw: ``, expected: false},
		{raw: `null`, expected: false},
		{raw: `[{"value": 7}]`, expected: false},
		{raw: `"value"`, expected: false},
		{raw: `{"value": 7} trailing`, expected: false},
		{raw: `{"value": 7}]`, expected: false},
		{raw: `{"value": 7}{"value": 8}`, expected: false},
		{raw: `{"value": 7},{"value": 8}`, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, ledger.IsJSONObject([]byte(tc.raw)))
		})
	}
}

//nolint:funlen
func Test_IntField(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		expectedValue int64
		expectedErr   error
	}{
		{name: "positive integer", data: `{"value": 7}`, expectedValue: 7},
		{name: "negative integer", data: `{"value": -100}`, expectedValue: -100},
		{name: "zero", data: `{"value": 0}`, expectedValue: 0},
		{name: "surrounded by other fields", data: `{"a": "x", "value": 12, "b": [1]}`, expectedValue: 12},
		{name: "whitespace around the number", data: "{\"value\" :\n  31 \n}", expectedValue: 31},
		{name: "max int64", data: `{"value": 9223372036854775807}`, expectedValue: 9223372036854775807},
		{name: "missing field", data: `{"other": 7}`, expectedErr: ledger.ErrFieldMissing},
		{name: "empty object", data: `{}`, expectedErr: ledger.ErrFieldMissing},
		{name: "string value", data: `{"value": "7"}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "null value", data: `{"value": null}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "boolean value", data: `{"value": true}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "object value", data: `{"value": {"v": 1}}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "fractional value", data: `{"value": 7.5}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "exponent value", data: `{"value": 1e3}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "overflowing value", data: `{"value": 9223372036854775808}`, expectedErr: ledger.ErrFieldNotInteger},
		{name: "array instead of object", data: `[{"value": 7}]`, expectedErr: ledger.ErrDataNotAnObject},
		{name: "invalid json", data: `{"value": 7`, expectedErr: ledger.ErrDataNotAnObject},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, err := ledger.IntField([]byte(tc.data), "value")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func Test_Asset_IntField_DelegatesToPayload(t *testing.T) {
	asset, err := ledger.BuildAsset("-1", 1, []byte(`{"value": 100}`), time.Now())
	assert.NoError(t, err)

	value, err := asset.IntField("value")

	assert.NoError(t, err)
	assert.Equal(t, int64(100), value)
}
