// Package postgresengine provides a PostgreSQL implementation of the ledger accessor interfaces.
//
// Assets are stored append-only, one row per version:
//
//	CREATE TABLE assets (
//		id         TEXT        NOT NULL,
//		age        BIGINT      NOT NULL,
//		data       JSONB       NOT NULL,
//		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//		PRIMARY KEY (id, age)
//	);
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX), each with an optional read replica
//   - Optimistic concurrency for Put, detected by the expected latest age and the primary key
//   - Configurable table name, logging, metrics, and tracing
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewAssetStoreFromPGXPool(db)
//
//	// With logging and a custom table
//	store, _ := postgresengine.NewAssetStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("my_assets"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	asset, found, _ := store.Get(ctx, "42")
//	err := store.Put(ctx, "42", asset.Age, []byte(`{"value": 8}`))
package postgresengine
