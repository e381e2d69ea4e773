package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/model"
)

// Dialect is the database/sql driver name the store talks to.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// Store is the database/sql implementation of the history ledger and the
// preference table, shared by the sqlite and postgres backends.
type Store struct {
	db           *sql.DB
	dialect      Dialect
	placeholders PlaceholderFunc
	logger       *zap.Logger
}

// New wraps an open connection. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect, logger *zap.Logger) *Store {
	var placeholders PlaceholderFunc

	switch dialect {
	case Postgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &Store{
		db:           db,
		dialect:      dialect,
		placeholders: placeholders,
		logger:       logging.OrNop(logger),
	}
}

// Migrate creates the history and preference tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	seq := "seq INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == Postgres {
		seq = "seq BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS history (
			%s,
			job_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT '',
			artifacts TEXT NOT NULL DEFAULT '{}',
			audio_url TEXT NOT NULL DEFAULT ''
		)`, seq),
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}

// Insert prepends entry and evicts rows beyond the ledger capacity in one transaction.
func (s *Store) Insert(ctx context.Context, entry model.HistoryEntry) error {
	artifacts, err := json.Marshal(entry.Artifacts)
	if err != nil {
		return fmt.Errorf("encode artifacts: %w", err)
	}
	if entry.Artifacts == nil {
		artifacts = []byte("{}")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(
		`INSERT INTO history (job_id, created_at, language, text, artifacts, audio_url)
		 VALUES (%s)`,
		s.params(6),
	)
	_, err = tx.ExecContext(ctx, insert,
		entry.ID,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.Language,
		entry.Text,
		string(artifacts),
		entry.AudioURL,
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	evict := fmt.Sprintf(
		`DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM (SELECT seq FROM history ORDER BY seq DESC LIMIT %d) AS recent
		)`,
		model.HistoryCapacity,
	)
	if _, err := tx.ExecContext(ctx, evict); err != nil {
		return fmt.Errorf("evict failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// List returns the ledger most recent first. Rows that cannot be decoded are
// skipped and logged.
func (s *Store) List(ctx context.Context) ([]model.HistoryEntry, error) {
	query := fmt.Sprintf(
		`SELECT job_id, created_at, language, text, artifacts, audio_url
		 FROM history
		 ORDER BY seq DESC
		 LIMIT %d`,
		model.HistoryCapacity,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	entries := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var (
			e         model.HistoryEntry
			created   string
			artifacts string
		)
		if err := rows.Scan(&e.ID, &created, &e.Language, &e.Text, &artifacts, &e.AudioURL); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		ts, err := model.ParseTimestamp(created)
		if err != nil {
			s.skip(e.ID, err)
			continue
		}
		e.CreatedAt = ts
		if err := json.Unmarshal([]byte(artifacts), &e.Artifacts); err != nil {
			s.skip(e.ID, err)
			continue
		}
		if len(e.Artifacts) == 0 {
			e.Artifacts = nil
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// Clear empties the ledger.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

// LoadValues returns every stored preference.
func (s *Store) LoadValues(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		values[k] = v
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return values, nil
}

// SaveValues upserts the given preferences in one transaction.
func (s *Store) SaveValues(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback()

	upsert := fmt.Sprintf(
		`INSERT INTO preferences (key, value) VALUES (%s)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		s.params(2),
	)
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, upsert, k, v); err != nil {
			return fmt.Errorf("save preference %s failed: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) params(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = s.placeholders(i + 1)
	}
	return strings.Join(p, ", ")
}

func (s *Store) skip(jobID string, err error) {
	s.logger.Warn("skipping unreadable history row",
		zap.String("job_id", jobID),
		zap.Error(apperrors.Wrap(apperrors.ErrPersistenceCorrupt, err.Error())))
}
