package repository

import (
	"context"

	"s2x/internal/app/model"
)

// HistoryStore is the capacity-bounded ledger of completed jobs, most recent first.
//
// Implementations prepend on Insert and evict everything beyond
// model.HistoryCapacity. Entries that can no longer be decoded are skipped
// by List rather than failing the read.
type HistoryStore interface {
	Insert(ctx context.Context, entry model.HistoryEntry) error
	List(ctx context.Context) ([]model.HistoryEntry, error)
	Clear(ctx context.Context) error
	Close() error
}

// PreferenceStore is an opaque key/value store for session preferences.
type PreferenceStore interface {
	LoadValues(ctx context.Context) (map[string]string, error)
	SaveValues(ctx context.Context, values map[string]string) error
}

// Store is a backend serving both the ledger and the preferences.
type Store interface {
	HistoryStore
	PreferenceStore
}
