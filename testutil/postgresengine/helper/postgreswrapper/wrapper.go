package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/postgresengine"
	"github.com/AntonStoeckl/dynamic-assetledger-go/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	defaultTableName = "assets"
)

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetAssetStore() *postgresengine.AssetStore
	Exec(ctx context.Context, query string) error
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	as   *postgresengine.AssetStore
}

// GetAssetStore returns the asset store under test.
func (w *PGXPoolWrapper) GetAssetStore() *postgresengine.AssetStore {
	return w.as
}

// Exec runs a raw SQL statement against the test database.
func (w *PGXPoolWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.pool.Exec(ctx, query)
	return err
}

// Close closes the underlying connection pool.
func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db *sql.DB
	as *postgresengine.AssetStore
}

// GetAssetStore returns the asset store under test.
func (w *SQLDBWrapper) GetAssetStore() *postgresengine.AssetStore {
	return w.as
}

// Exec runs a raw SQL statement against the test database.
func (w *SQLDBWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

// Close closes the underlying database handle.
func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db *sqlx.DB
	as *postgresengine.AssetStore
}

// GetAssetStore returns the asset store under test.
func (w *SQLXWrapper) GetAssetStore() *postgresengine.AssetStore {
	return w.as
}

// Exec runs a raw SQL statement against the test database.
func (w *SQLXWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

// Close closes the underlying database handle.
func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the ADAPTER_TYPE environment variable.
// The assets table is created if it does not exist yet.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	wrapper := createWrapperWithTestConfig(t, options...)
	EnsureAssetTable(t, wrapper, defaultTableName)

	return wrapper
}

// TryCreateAssetStoreWithTableName tries to create an asset store with the given table name and returns the error (for testing error cases)
func TryCreateAssetStoreWithTableName(t testing.TB, tableName string) error {
	wrapper, err := tryCreateWrapperWithTestConfig(t, postgresengine.WithTableName(tableName))
	if wrapper != nil {
		wrapper.Close()
	}

	return err
}

func createWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	wrapper, err := tryCreateWrapperWithTestConfig(t, options...)
	require.NoError(t, err, "error creating asset store")

	return wrapper
}

func tryCreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) (Wrapper, error) {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolSingleConfig())
		if err != nil {
			return nil, err
		}

		as, err := postgresengine.NewAssetStoreFromPGXPool(connPool, options...)
		if err != nil {
			connPool.Close()
			return nil, err
		}

		return &PGXPoolWrapper{pool: connPool, as: as}, nil

	case typeSQLDB:
		db := config.PostgresSQLDBSingleConfig()

		as, err := postgresengine.NewAssetStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close() // makes no sense to handle this
			return nil, err
		}

		return &SQLDBWrapper{db: db, as: as}, nil

	case typeSQLXDB:
		db := config.PostgresSQLXSingleConfig()

		as, err := postgresengine.NewAssetStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close() // makes no sense to handle this
			return nil, err
		}

		return &SQLXWrapper{db: db, as: as}, nil

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// EnsureAssetTable creates the asset table with the given name if it does not exist.
func EnsureAssetTable(t testing.TB, wrapper Wrapper, tableName string) {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT NOT NULL,
		age BIGINT NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (id, age)
	)`, tableName)

	err := wrapper.Exec(context.Background(), query)
	require.NoError(t, err, "error creating the %s table", tableName)
}

// CleanUp cleans up the assets table for the given wrapper
func CleanUp(t testing.TB, wrapper Wrapper) {
	err := wrapper.Exec(context.Background(), "TRUNCATE TABLE "+defaultTableName)
	assert.NoError(t, err, "error cleaning up the assets table")
}

// GivenRawAssetRow inserts a row bypassing the asset store, e.g. to arrange corrupt payloads.
func GivenRawAssetRow(t testing.TB, wrapper Wrapper, assetID string, age int64, rawJSON string) {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, age, data) VALUES ('%s', %d, '%s'::jsonb)`,
		defaultTableName,
		strings.ReplaceAll(assetID, "'", "''"),
		age,
		strings.ReplaceAll(rawJSON, "'", "''"),
	)

	err := wrapper.Exec(context.Background(), query)
	require.NoError(t, err, "error in arranging test data")
}
