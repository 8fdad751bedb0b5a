package testdoubles

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
)

// InMemoryLedger is a ledger.AccessorPutter keeping all asset versions in memory.
type InMemoryLedger struct {
	mu        sync.Mutex
	versions  map[string][]ledger.Asset
	getCalls  []string
	getErr    error
	putErr    error
	clockFunc func() time.Time
}

// NewInMemoryLedger creates an empty InMemoryLedger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		versions:  make(map[string][]ledger.Asset),
		clockFunc: time.Now,
	}
}

// FailGetWith makes every following Get return err.
func (l *InMemoryLedger) FailGetWith(err error) *InMemoryLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.getErr = err

	return l
}

// FailPutWith makes every following Put return err.
func (l *InMemoryLedger) FailPutWith(err error) *InMemoryLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.putErr = err

	return l
}

// Get returns the latest version of the asset with the given id.
func (l *InMemoryLedger) Get(ctx context.Context, assetID string) (ledger.Asset, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.getCalls = append(l.getCalls, assetID)

	if err := ctx.Err(); err != nil {
		return ledger.Asset{}, false, err
	}

	if l.getErr != nil {
		return ledger.Asset{}, false, l.getErr
	}

	versions := l.versions[assetID]
	if len(versions) == 0 {
		return ledger.Asset{}, false, nil
	}

	return versions[len(versions)-1], true, nil
}

// Put appends a new version if expectedLatestAge matches the latest stored age.
func (l *InMemoryLedger) Put(
	ctx context.Context,
	assetID string,
	expectedLatestAge ledger.AgeUint,
	data json.RawMessage,
) error {

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if l.putErr != nil {
		return l.putErr
	}

	versions := l.versions[assetID]
	if ledger.AgeUint(len(versions)) != expectedLatestAge {
		return ledger.ErrConcurrencyConflict
	}

	dataCopy := make(json.RawMessage, len(data))
	copy(dataCopy, data)

	asset, err := ledger.BuildAsset(assetID, expectedLatestAge+1, dataCopy, l.clockFunc())
	if err != nil {
		return err
	}

	l.versions[assetID] = append(versions, asset)

	return nil
}

// GivenRawVersion appends a version without validating the payload, e.g. to arrange corrupt data.
func (l *InMemoryLedger) GivenRawVersion(assetID string, data json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()

	versions := l.versions[assetID]
	l.versions[assetID] = append(versions, ledger.Asset{
		ID:        assetID,
		Age:       ledger.AgeUint(len(versions) + 1),
		Data:      data,
		CreatedAt: l.clockFunc(),
	})
}

// GetCalls returns a copy of the asset ids Get was called with, in call order.
func (l *InMemoryLedger) GetCalls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	calls := make([]string, len(l.getCalls))
	copy(calls, l.getCalls)

	return calls
}

// VersionCount returns the number of stored versions for an asset id.
func (l *InMemoryLedger) VersionCount(assetID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.versions[assetID])
}

var _ ledger.AccessorPutter = (*InMemoryLedger)(nil)
