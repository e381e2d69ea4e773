package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s2x/internal/config"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "/tmp/Interview.MP3")
	assert.Regexp(t, regexp.MustCompile(`^audio/2025/[0-9a-f-]{36}\.mp3$`), key)
	assert.NotEqual(t, key, ObjectKey(time.Now(), "x.mp3"))
}

func TestFileHash(t *testing.T) {
	sum, err := fileHash(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)
}

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := New(config.StorageConfig{Bucket: "b"})
	assert.Error(t, err)
	_, err = New(config.StorageConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	u, err := New(config.StorageConfig{Endpoint: "localhost:9000", Bucket: "b"})
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestUpload_MissingFile(t *testing.T) {
	u, err := New(config.StorageConfig{Endpoint: "localhost:9000", Bucket: "b"})
	require.NoError(t, err)
	_, err = u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"))
	assert.Error(t, err)
}

func TestUpload_Integration(t *testing.T) {
	endpoint := os.Getenv("S2X_TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("S2X_TEST_MINIO_ENDPOINT not set")
	}
	ctx := context.Background()
	u, err := New(config.StorageConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    "s2x-test",
	})
	require.NoError(t, err)
	require.NoError(t, u.EnsureBucket(ctx))

	path := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 fake audio"), 0o644))

	res, err := u.Upload(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(14), res.Size)
	assert.Len(t, res.SHA256, 64)

	resp, err := http.Get(res.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
