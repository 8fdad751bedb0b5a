// Package ledger provides core abstractions and types for a key-addressed,
// versioned asset ledger.
//
// This package defines the types shared by the ledger engines and the contracts
// reading from them: assets, the accessor capabilities, consistency hints and
// the dependency-free observability interfaces.
//
// Every asset is addressed by a string id. Each Put appends a new version (age)
// of that asset, and Get always returns the latest visible version.
//
// Key types:
//   - Asset: A single version of an asset with its JSON data payload
//   - Accessor: The read capability handed to contracts
//   - Putter: The write capability used by writers and fixtures
//
// Common usage pattern:
//
//	asset, found, err := store.Get(ctx, "42")
//	if err != nil {
//		// handle error
//	}
//
//	if found {
//		value, err := asset.IntField("value")
//	}
//
//	err = store.Put(ctx, "42", asset.Age, []byte(`{"value": 8}`))
package ledger
