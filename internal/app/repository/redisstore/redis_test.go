package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s2x/internal/app/model"
	"s2x/internal/app/repository"
)

func openTest(t *testing.T) *Store {
	addr := os.Getenv("S2X_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("S2X_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := Open(ctx, Options{Addr: addr, Key: "s2x:test:" + uuid.NewString()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.client.Del(ctx, store.listKey, store.prefKey)
		store.Close()
	})
	return store
}

func TestImplementsStore(t *testing.T) {
	var _ repository.Store = (*Store)(nil)
}

func TestRedisLedger(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	for i := 1; i <= model.HistoryCapacity+1; i++ {
		require.NoError(t, store.Insert(ctx, model.HistoryEntry{
			ID:        fmt.Sprintf("job-%d", i),
			Text:      "hola",
			Artifacts: model.Artifacts{"srt": "http://a/x.srt"},
		}))
	}
	require.NoError(t, store.client.LPush(ctx, store.listKey, "{garbage").Err())

	got, err := store.List(ctx)
	require.NoError(t, err)
	// the garbage row pushed the oldest real entry out of the read window
	require.Len(t, got, model.HistoryCapacity-1)
	assert.Equal(t, "job-51", got[0].ID)
	assert.Equal(t, model.Artifacts{"srt": "http://a/x.srt"}, got[0].Artifacts)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	got, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisPreferences(t *testing.T) {
	store := openTest(t)
	ctx := context.Background()

	require.NoError(t, repository.SavePreferences(ctx, store, model.Preferences{Tab: "history"}))
	got := repository.LoadPreferences(ctx, store, model.Preferences{Tab: model.DefaultTab}, nil)
	assert.Equal(t, "history", got.Tab)
}
