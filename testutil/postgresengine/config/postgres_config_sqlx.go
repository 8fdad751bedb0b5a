package config

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXSingleConfig creates a configured *sqlx.DB for a single database.
func PostgresSQLXSingleConfig() *sqlx.DB {
	return mustOpenSQLX(PostgresSingleDSN())
}

// PostgresSQLXPrimaryConfig creates a configured *sqlx.DB for the primary node of a replicated database.
func PostgresSQLXPrimaryConfig() *sqlx.DB {
	return mustOpenSQLX(PostgresPrimaryDSN())
}

// PostgresSQLXReplicaConfig creates a configured *sqlx.DB for the replica node of a replicated database.
func PostgresSQLXReplicaConfig() *sqlx.DB {
	return mustOpenSQLX(PostgresReplicaDSN())
}

// openSQLX opens and pings a *sqlx.DB (lib/pq driver) for an arbitrary DSN.
func openSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverPostgres, dsn)
	if err != nil {
		return nil, err
	}

	configureSQLPool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}

func mustOpenSQLX(dsn string) *sqlx.DB {
	db, err := openSQLX(context.Background(), dsn)
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	return db
}
