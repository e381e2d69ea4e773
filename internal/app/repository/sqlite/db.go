package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/repository/sqlstore"
)

// Open opens (creating if needed) the sqlite ledger at dbPath. A file that
// fails the integrity check is moved aside and replaced by a fresh database.
func Open(ctx context.Context, dbPath string, logger *zap.Logger) (*sqlstore.Store, error) {
	logger = logging.OrNop(logger)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := connect(ctx, dbPath)
	if err != nil {
		if !isCorrupt(err) {
			return nil, err
		}
		aside, rerr := moveAside(dbPath)
		if rerr != nil {
			return nil, fmt.Errorf("%w (and could not move it aside: %v)", err, rerr)
		}
		logger.Warn("history database unreadable, starting fresh",
			zap.String("path", dbPath),
			zap.String("moved_to", aside),
			zap.Error(apperrors.Wrap(apperrors.ErrPersistenceCorrupt, err.Error())))

		if db, err = connect(ctx, dbPath); err != nil {
			return nil, err
		}
	}

	store := sqlstore.New(db, sqlstore.SQLite, logger)
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func connect(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single writer keeps insert+evict transactions from contending
	db.SetMaxOpenConns(1)

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		db.Close()
		return nil, fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		db.Close()
		return nil, fmt.Errorf("integrity check failed: database disk image is malformed: %s", result)
	}
	return db, nil
}

func isCorrupt(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "not a database") || strings.Contains(msg, "malformed")
}

func moveAside(dbPath string) (string, error) {
	aside := fmt.Sprintf("%s.corrupt-%d", dbPath, time.Now().Unix())
	if err := os.Rename(dbPath, aside); err != nil {
		return "", err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	return aside, nil
}
