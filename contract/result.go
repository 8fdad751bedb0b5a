package contract

import (
	"encoding/json"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

var jsonNull = []byte("null")

// Result is the optional outcome of a contract invocation.
// The zero value is the absent result.
type Result struct {
	object  json.RawMessage
	present bool
}

// Some creates a present Result holding the given JSON object.
func Some(object json.RawMessage) Result {
	objectCopy := make(json.RawMessage, len(object))
	copy(objectCopy, object)

	return Result{object: objectCopy, present: true}
}

// NoResult creates the absent Result.
func NoResult() Result {
	return Result{}
}

// IsPresent reports whether the Result holds an object.
func (r Result) IsPresent() bool {
	return r.present
}

// Object returns the held JSON object, or nil for the absent Result.
func (r Result) Object() json.RawMessage {
	if !r.present {
		return nil
	}

	objectCopy := make(json.RawMessage, len(r.object))
	copy(objectCopy, r.object)

	return objectCopy
}

// IntField reads an integer field from the held object, see ledger.IntField.
func (r Result) IntField(name string) (int64, error) {
	return ledger.IntField(r.object, name)
}

// MarshalJSON encodes the held object as is, and the absent Result as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.present {
		return jsonNull, nil
	}

	return r.Object(), nil
}

// String returns the JSON encoding of the Result.
func (r Result) String() string {
	encoded, _ := r.MarshalJSON()
	return string(encoded)
}
