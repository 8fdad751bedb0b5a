// Package read implements the read contract: look up the asset stored under an integer key and
// return its integer value.
//
// Argument: {"key": <int64>}. The key is converted to its canonical decimal string (sign preserved)
// which is the asset id used for the lookup.
//
// Result: {"value": <int64>} if the asset exists, the absent result otherwise.
//
// Errors:
//   - contract.ErrMissingArgument if the argument has no key, with the message "required key 'key' is missing"
//   - contract.ErrInvalidArgument if the argument is not an object or the key is not an integer
//   - contract.ErrMalformedAsset if the stored payload has no integer value field
//   - ledger failures are returned unchanged
//
// The contract never writes to the ledger and keeps no state between invocations.
package read
