package ledger

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyTableName = errors.New("empty assetTableName supplied")
var ErrQueryingAssetFailed = errors.New("querying asset failed")
var ErrPuttingAssetFailed = errors.New("putting asset failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

// AgeUint is a type alias for uint, representing the version number ("age") of an asset.
// The first version of an asset has age 1; age 0 means the asset does not exist yet.
type AgeUint = uint

// Accessor is the read capability a contract gets injected.
// Get returns the latest visible version of the asset, or found == false if there is none.
type Accessor interface {
	Get(ctx context.Context, assetID string) (asset Asset, found bool, err error)
}

// Putter is the write capability of a ledger engine.
//
// Put appends a new version of the asset, but only if the latest stored age equals expectedLatestAge.
// Otherwise it fails with ErrConcurrencyConflict.
type Putter interface {
	Put(ctx context.Context, assetID string, expectedLatestAge AgeUint, data json.RawMessage) error
}

// AccessorPutter combines both capabilities, as implemented by the engines.
type AccessorPutter interface {
	Accessor
	Putter
}
