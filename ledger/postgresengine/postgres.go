package postgresengine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/postgresengine/internal/adapters"
)

const (
	defaultAssetTableName        = "assets"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during asset put"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildAssetFailed       = "failed to build asset from database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgAssetLoaded            = "asset loaded"
	logMsgAssetNotFound          = "asset not found"
	logMsgAssetPut               = "asset put"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "assetstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrAssetID               = "asset_id"
	logAttrAge                   = "age"
	logAttrExpectedAge           = "expected_age"
	logAttrRowsAffected          = "rows_affected"
	logAttrDurationMS            = "duration_ms"
	logAttrConsistency           = "consistency"
	logActionGet                 = "get"
	logActionPut                 = "put"
	colID                        = "id"
	colAge                       = "age"
	colData                      = "data"
	colCreatedAt                 = "created_at"
	cteContext                   = "context"
	dialectPostgres              = "postgres"
	aliasMaxAge                  = "max_age"
	castJsonb                    = "?::jsonb"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// AssetStore is a PostgreSQL backed, versioned asset ledger.
// Every Put appends a new row (id, age, data); Get returns the row with the highest age for an id.
// It is safe for concurrent use as long as the underlying connection pool is.
type AssetStore struct {
	db               adapters.DBAdapter
	assetTableName   string
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

type getResultRow struct {
	id        string
	age       int64
	data      []byte
	createdAt time.Time
}

// NewAssetStoreFromPGXPool creates a new AssetStore using a pgx Pool with optional configuration.
func NewAssetStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*AssetStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewPGXAdapter(db), options...)
}

// NewAssetStoreFromPGXPoolAndReplica creates a new AssetStore using a primary and a replica pgx Pool.
// Reads go to the replica only for contexts marked with ledger.WithEventualConsistency.
func NewAssetStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*AssetStore, error) {
	if db == nil || replica == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewAssetStoreFromSQLDB creates a new AssetStore using a sql.DB with optional configuration.
func NewAssetStoreFromSQLDB(db *sql.DB, options ...Option) (*AssetStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewSQLAdapter(db), options...)
}

// NewAssetStoreFromSQLDBAndReplica creates a new AssetStore using a primary and a replica sql.DB.
func NewAssetStoreFromSQLDBAndReplica(db *sql.DB, replica *sql.DB, options ...Option) (*AssetStore, error) {
	if db == nil || replica == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewAssetStoreFromSQLX creates a new AssetStore using a sqlx.DB with optional configuration.
func NewAssetStoreFromSQLX(db *sqlx.DB, options ...Option) (*AssetStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewSQLXAdapter(db), options...)
}

// NewAssetStoreFromSQLXAndReplica creates a new AssetStore using a primary and a replica sqlx.DB.
func NewAssetStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*AssetStore, error) {
	if db == nil || replica == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newAssetStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newAssetStore(db adapters.DBAdapter, options ...Option) (*AssetStore, error) {
	as := &AssetStore{
		db:             db,
		assetTableName: defaultAssetTableName,
	}

	for _, option := range options {
		if err := option(as); err != nil {
			return nil, err
		}
	}

	return as, nil
}

// Get retrieves the latest version of the asset with the given id.
// It returns found == false, and no error, if the ledger holds no version of that asset.
func (as *AssetStore) Get(ctx context.Context, assetID string) (ledger.Asset, bool, error) {
	getStart := time.Now()
	ctx, span := as.startGetSpan(ctx, assetID)

	sqlQuery, buildQueryErr := as.buildGetQuery(assetID)
	if buildQueryErr != nil {
		as.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr, logAttrAssetID, assetID)
		as.recordGetError(ctx, span, errorTypeBuildQuery, time.Since(getStart))

		return ledger.Asset{}, false, buildQueryErr
	}

	rows, duration, queryErr := as.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		as.recordGetError(ctx, span, classifyContextError(ctx, errorTypeDatabaseQuery), time.Since(getStart))
		return ledger.Asset{}, false, queryErr
	}
	defer as.closeRows(ctx, rows)

	asset, found, scanErr := as.processGetResult(ctx, rows)
	if scanErr != nil {
		as.recordGetError(ctx, span, errorTypeRowScan, time.Since(getStart))
		return ledger.Asset{}, false, scanErr
	}

	as.recordGetSuccess(ctx, span, found, time.Since(getStart))

	if !found {
		as.logOperation(ctx,
			logMsgAssetNotFound,
			logAttrAssetID, assetID,
			logAttrDurationMS, toMilliseconds(duration))

		return ledger.Asset{}, false, nil
	}

	as.logOperation(ctx,
		logMsgAssetLoaded,
		logAttrAssetID, assetID,
		logAttrAge, asset.Age,
		logAttrConsistency, ledger.GetConsistencyLevel(ctx).String(),
		logAttrDurationMS, toMilliseconds(duration))

	return asset, true, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (as *AssetStore) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := as.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	as.logQueryWithDuration(ctx, sqlQuery, logActionGet, duration)

	if queryErr != nil {
		as.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(ledger.ErrQueryingAssetFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (as *AssetStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		as.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// processGetResult scans at most one row into a ledger.Asset.
func (as *AssetStore) processGetResult(ctx context.Context, rows adapters.DBRows) (ledger.Asset, bool, error) {
	result := getResultRow{}

	if !rows.Next() {
		if iterErr := rows.Err(); iterErr != nil {
			as.logError(ctx, logMsgDBQueryFailed, iterErr)
			return ledger.Asset{}, false, errors.Join(ledger.ErrQueryingAssetFailed, iterErr)
		}

		return ledger.Asset{}, false, nil
	}

	rowScanErr := rows.Scan(&result.id, &result.age, &result.data, &result.createdAt)
	if rowScanErr != nil {
		as.logError(ctx, logMsgScanRowFailed, rowScanErr)
		return ledger.Asset{}, false, errors.Join(ledger.ErrScanningDBRowFailed, rowScanErr)
	}

	if result.age < 0 {
		ageErr := errors.New("negative age " + strconv.FormatInt(result.age, 10))
		as.logError(ctx, logMsgBuildAssetFailed, ageErr, logAttrAssetID, result.id)

		return ledger.Asset{}, false, errors.Join(ledger.ErrScanningDBRowFailed, ageErr)
	}

	asset, buildErr := ledger.BuildAsset(result.id, ledger.AgeUint(result.age), json.RawMessage(result.data), result.createdAt)
	if buildErr != nil {
		as.logError(ctx, logMsgBuildAssetFailed, buildErr, logAttrAssetID, result.id)
		return ledger.Asset{}, false, errors.Join(ledger.ErrScanningDBRowFailed, buildErr)
	}

	return asset, true, nil
}

// Put appends a new version of the asset with the given id, respecting optimistic concurrency.
//
// expectedLatestAge must be the age of the latest version the caller has seen, or 0 if the asset
// does not exist yet. The new version gets age expectedLatestAge+1. If another writer got there
// first, Put fails with ledger.ErrConcurrencyConflict.
func (as *AssetStore) Put(
	ctx context.Context,
	assetID string,
	expectedLatestAge ledger.AgeUint,
	data json.RawMessage,
) error {

	putStart := time.Now()
	ctx, span := as.startPutSpan(ctx, assetID, expectedLatestAge)

	if assetID == "" {
		as.recordPutError(ctx, span, errorTypeValidation, time.Since(putStart))
		return ledger.ErrEmptyAssetID
	}

	if !ledger.IsJSONObject(data) {
		as.recordPutError(ctx, span, errorTypeValidation, time.Since(putStart))
		return ledger.ErrInvalidAssetDataJSON
	}

	sqlQuery, buildQueryErr := as.buildPutQuery(assetID, expectedLatestAge, data)
	if buildQueryErr != nil {
		as.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrAssetID, assetID)
		as.recordPutError(ctx, span, errorTypeBuildQuery, time.Since(putStart))

		return buildQueryErr
	}

	rowsAffected, duration, execErr := as.executePutQuery(ctx, sqlQuery)
	if execErr != nil {
		if errors.Is(execErr, ledger.ErrConcurrencyConflict) {
			as.recordPutConflict(ctx, span, assetID, expectedLatestAge, 0, time.Since(putStart))
			return execErr
		}

		as.recordPutError(ctx, span, classifyContextError(ctx, errorTypeDatabaseExec), time.Since(putStart))

		return execErr
	}

	if rowsAffected < 1 {
		as.recordPutConflict(ctx, span, assetID, expectedLatestAge, rowsAffected, time.Since(putStart))
		return ledger.ErrConcurrencyConflict
	}

	as.recordPutSuccess(ctx, span, time.Since(putStart))
	as.logOperation(ctx,
		logMsgAssetPut,
		logAttrAssetID, assetID,
		logAttrAge, expectedLatestAge+1,
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

// executePutQuery executes the SQL insert and returns rows affected and duration.
// A unique violation on (id, age) means a concurrent writer appended the same age first.
func (as *AssetStore) executePutQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	tag, execErr := as.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	as.logQueryWithDuration(ctx, sqlQuery, logActionPut, duration)

	if execErr != nil {
		if adapters.IsUniqueViolation(execErr) {
			return 0, duration, errors.Join(ledger.ErrConcurrencyConflict, execErr)
		}

		as.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(ledger.ErrPuttingAssetFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		as.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, duration, errors.Join(ledger.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (as *AssetStore) buildGetQuery(assetID string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(as.assetTableName).
		Select(colID, colAge, colData, colCreatedAt).
		Where(goqu.C(colID).Eq(assetID)).
		Order(goqu.I(colAge).Desc()).
		Limit(1)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ledger.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (as *AssetStore) buildPutQuery(
	assetID string,
	expectedLatestAge ledger.AgeUint,
	data json.RawMessage,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(as.assetTableName).
		Select(goqu.MAX(colAge).As(aliasMaxAge)).
		Where(goqu.C(colID).Eq(assetID))

	// Define the SELECT for the INSERT
	selectStmt := builder.
		From(cteContext).
		Select(goqu.V(assetID), goqu.V(expectedLatestAge+1), goqu.L(castJsonb, string(data))).
		Where(goqu.COALESCE(goqu.C(aliasMaxAge), 0).Eq(goqu.V(expectedLatestAge)))

	// Finalize the full INSERT query
	insertStmt := builder.
		Insert(as.assetTableName).
		Cols(colID, colAge, colData).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ledger.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
