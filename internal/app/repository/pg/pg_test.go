package pg

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s2x/internal/app/model"
)

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestPostgresLedger(t *testing.T) {
	dsn := os.Getenv("S2X_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("S2X_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	store, err := Open(ctx, dsn, nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.Insert(ctx, model.HistoryEntry{ID: "job-1", Language: "es", Text: "hola"}))
	require.NoError(t, store.Insert(ctx, model.HistoryEntry{ID: "job-2", Language: "en", Text: "hi"}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "job-2", got[0].ID)

	require.NoError(t, store.Clear(ctx))
}
