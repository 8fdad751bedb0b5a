package ledger

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrEmptyAssetID is returned when an asset is built without an id.
	ErrEmptyAssetID = errors.New("asset id must not be empty")

	// ErrInvalidAssetDataJSON is returned when the data payload is not a valid JSON object.
	ErrInvalidAssetDataJSON = errors.New("asset data json is not a valid object")

	// ErrDataNotAnObject is returned by IntField when the payload is not a JSON object.
	ErrDataNotAnObject = errors.New("asset data is not a json object")

	// ErrFieldMissing is returned by IntField when the requested field does not exist.
	ErrFieldMissing = errors.New("field is missing")

	// ErrFieldNotInteger is returned by IntField when the requested field is not an integer.
	ErrFieldNotInteger = errors.New("field is not an integer")
)

// Asset is a DTO (data transfer object) holding one version of an asset as it is stored in the ledger.
//
// It is built on scalars and raw JSON to be completely agnostic of the asset shapes used by contracts.
//
// While its properties are exported, it should only be constructed with the supplied factory method BuildAsset.
type Asset struct {
	ID        string
	Age       AgeUint
	Data      json.RawMessage
	CreatedAt time.Time
}

// BuildAsset is a factory method for Asset.
//
// Returns an error if the id is empty or data is not a valid JSON object.
func BuildAsset(id string, age AgeUint, data json.RawMessage, createdAt time.Time) (Asset, error) {
	if id == "" {
		return Asset{}, ErrEmptyAssetID
	}

	if !IsJSONObject(data) {
		return Asset{}, ErrInvalidAssetDataJSON
	}

	return Asset{
		ID:        id,
		Age:       age,
		Data:      data,
		CreatedAt: createdAt,
	}, nil
}

// IntField reads the integer field with the given name from the asset's data payload.
func (a Asset) IntField(name string) (int64, error) {
	return IntField(a.Data, name)
}

// IsJSONObject reports whether raw is exactly one valid JSON value with an object at the top level.
// Trailing data after the object makes it invalid.
func IsJSONObject(raw []byte) bool {
	if len(raw) == 0 || !json.Valid(raw) {
		return false
	}

	return jsoniter.ConfigFastest.Get(raw).ValueType() == jsoniter.ObjectValue
}

// IntField reads the integer field with the given name from a raw JSON object.
//
// Only integral number literals within the int64 range are accepted, so 7.0 or 1e3 are rejected
// with ErrFieldNotInteger instead of being truncated.
func IntField(object []byte, name string) (int64, error) {
	if !IsJSONObject(object) {
		return 0, ErrDataNotAnObject
	}

	field := jsoniter.ConfigFastest.Get(object, name)

	switch field.ValueType() {
	case jsoniter.InvalidValue:
		return 0, ErrFieldMissing
	case jsoniter.NumberValue:
		// handled below
	default:
		return 0, ErrFieldNotInteger
	}

	value, parseErr := strconv.ParseInt(field.ToString(), 10, 64)
	if parseErr != nil {
		return 0, errors.Join(ErrFieldNotInteger, parseErr)
	}

	return value, nil
}
