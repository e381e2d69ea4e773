package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"s2x/internal/app/repository/sqlstore"
)

// Open connects to postgres using dsn and ensures the ledger tables exist.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*sqlstore.Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres backend requires DATABASE_URL")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	store := sqlstore.New(db, sqlstore.Postgres, logger)
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
