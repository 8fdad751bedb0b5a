package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for sql.db and sqlx.db

	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/postgresengine"
)

const driverPostgres = "postgres"

// openAssetStore connects with the configured adapter and returns the store plus a func closing all connections.
func openAssetStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.AssetStore, func(), error) {

	options = append(options, postgresengine.WithTableName(cfg.Table))

	switch cfg.Adapter {
	case adapterSQLDB:
		return openSQLDBStore(ctx, cfg, options...)
	case adapterSQLX:
		return openSQLXStore(ctx, cfg, options...)
	default:
		return openPGXPoolStore(ctx, cfg, options...)
	}
}

func openPGXPoolStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.AssetStore, func(), error) {

	primary, err := connectPGXPool(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	if cfg.ReplicaDSN == "" {
		store, storeErr := postgresengine.NewAssetStoreFromPGXPool(primary, options...)
		if storeErr != nil {
			primary.Close()
			return nil, nil, storeErr
		}

		return store, primary.Close, nil
	}

	replica, err := connectPGXPool(ctx, cfg.ReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
	}

	closeAll := func() {
		replica.Close()
		primary.Close()
	}

	store, err := postgresengine.NewAssetStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}

func connectPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, pingErr
	}

	return pool, nil
}

func openSQLDBStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.AssetStore, func(), error) {

	primary, err := connectSQLDB(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	closePrimary := func() { closeQuietly(primary) }

	if cfg.ReplicaDSN == "" {
		store, storeErr := postgresengine.NewAssetStoreFromSQLDB(primary, options...)
		if storeErr != nil {
			closePrimary()
			return nil, nil, storeErr
		}

		return store, closePrimary, nil
	}

	replica, err := connectSQLDB(ctx, cfg.ReplicaDSN)
	if err != nil {
		closePrimary()
		return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
	}

	closeAll := func() {
		closeQuietly(replica)
		closePrimary()
	}

	store, err := postgresengine.NewAssetStoreFromSQLDBAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}

func connectSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(2)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, errors.Join(pingErr, db.Close())
	}

	return db, nil
}

func openSQLXStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.AssetStore, func(), error) {

	primary, err := sqlx.ConnectContext(ctx, driverPostgres, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	closePrimary := func() { closeQuietly(primary) }

	if cfg.ReplicaDSN == "" {
		store, storeErr := postgresengine.NewAssetStoreFromSQLX(primary, options...)
		if storeErr != nil {
			closePrimary()
			return nil, nil, storeErr
		}

		return store, closePrimary, nil
	}

	replica, err := sqlx.ConnectContext(ctx, driverPostgres, cfg.ReplicaDSN)
	if err != nil {
		closePrimary()
		return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
	}

	closeAll := func() {
		closeQuietly(replica)
		closePrimary()
	}

	store, err := postgresengine.NewAssetStoreFromSQLXAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}

type closer interface {
	Close() error
}

func closeQuietly(c closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close database connection", "error", err.Error())
	}
}
