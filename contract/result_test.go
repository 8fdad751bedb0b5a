package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

func Test_NoResult_IsAbsent(t *testing.T) {
	// act
	result := contract.NoResult()
	encoded, err := json.Marshal(result)

	// assert
	assert.False(t, result.IsPresent())
	assert.Nil(t, result.Object())
	assert.NoError(t, err)
	assert.Equal(t, "null", string(encoded))
	assert.Equal(t, contract.Result{}, result, "the zero value should be the absent result")
}

func Test_Some_IsPresent(t *testing.T) {
	// arrange
	object := json.RawMessage(`{"value":7}`)

	// act
	result := contract.Some(object)
	encoded, err := json.Marshal(result)
	value, valueErr := result.IntField("value")

	// assert
	assert.True(t, result.IsPresent())
	assert.JSONEq(t, `{"value":7}`, string(result.Object()))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"value":7}`, string(encoded))
	assert.NoError(t, valueErr)
	assert.Equal(t, int64(7), value)
	assert.Equal(t, `{"value":7}`, result.String())
}

func Test_Some_IsNotAffected_ByLaterMutations(t *testing.T) {
	// arrange
	object := json.RawMessage(`{"value":7}`)
	result := contract.Some(object)

	// act
	object[9] = '8'
	returned := result.Object()
	returned[9] = '9'

	// assert
	assert.Equal(t, `{"value":7}`, string(result.Object()))
}

func Test_Result_IntField_OnAbsentResult(t *testing.T) {
	// act
	_, err := contract.NoResult().IntField("value")

	// assert
	assert.ErrorIs(t, err, ledger.ErrDataNotAnObject)
}

func Test_Result_InsideAStruct_MarshalsAsNull(t *testing.T) {
	// arrange
	envelope := struct {
		Result contract.Result `json:"result"`
	}{Result: contract.NoResult()}

	// act
	encoded, err := json.Marshal(envelope)

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `{"result": null}`, string(encoded))
}
