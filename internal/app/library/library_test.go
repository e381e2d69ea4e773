package library

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/model"
	"s2x/internal/app/testutil"
	"s2x/internal/config"
)

func TestParseManifest_MixedShapes(t *testing.T) {
	items, err := ParseManifest([]byte(testutil.TestManifest))
	require.NoError(t, err)

	assert.Equal(t, []model.LibraryItem{
		{Name: "a.mp3"},
		{Name: "b.wav", Title: "B"},
		{Name: "c.ogg"},
	}, items)
}

func TestNormalize_Preference(t *testing.T) {
	var elems []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":"n.mp3","file":"f.mp3","path":"p/q.mp3","hint":"es"},
		{"file":"f.mp3","path":"p/q.mp3"},
		{"path":"p/"},
		{"name": 7},
		"",
		null,
		3
	]`), &elems))

	assert.Equal(t, []model.LibraryItem{
		{Name: "n.mp3", Hint: "es"},
		{Name: "f.mp3"},
	}, Normalize(elems))
}

func TestParseManifest_RejectsNonArrays(t *testing.T) {
	for _, doc := range []string{`{"items":[]}`, `null`, `"a.mp3"`, `<html>`} {
		_, err := ParseManifest([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func manifestServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad_FirstUsableSourceWins(t *testing.T) {
	broken := manifestServer(t, http.StatusNotFound, "")
	empty := manifestServer(t, http.StatusOK, `[{"title":"no name"}]`)
	good := manifestServer(t, http.StatusOK, `["one.mp3"]`)
	later := manifestServer(t, http.StatusOK, `["two.mp3"]`)

	r := NewResolver([]Source{
		URLSource{URL: broken.URL},
		URLSource{URL: empty.URL},
		URLSource{URL: good.URL},
		URLSource{URL: later.URL},
	}, "http://files/audio", nil, nil)

	res := r.Load(context.Background())
	assert.Equal(t, []model.LibraryItem{{Name: "one.mp3"}}, res.Items)
	assert.Equal(t, good.URL, res.Source)
	assert.Empty(t, res.Diagnostic)
	assert.NoError(t, res.Err)
	assert.False(t, res.Fallback())
}

func TestLoad_AllUnreachableFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	r := FromConfig(config.LibraryConfig{
		Sources:      []string{unreachable + "/audio/_manifest.json", "http://127.0.0.1:1/audio/_manifest.json"},
		ManifestFile: filepath.Join(t.TempDir(), "missing.json"),
	}, "http://files/audio", time.Second, nil, nil)

	res := r.Load(context.Background())
	require.Len(t, res.Items, 2)
	assert.Equal(t, "test_3.mp3", res.Items[0].Name)
	assert.Equal(t, "sample_es.mp3", res.Items[1].Name)
	assert.NotEmpty(t, res.Diagnostic)
	assert.True(t, res.Fallback())
	assert.True(t, errors.Is(res.Err, apperrors.ErrManifestUnavailable))
}

func TestLoad_NoSources(t *testing.T) {
	res := NewResolver(nil, "http://files/audio", nil, nil).Load(context.Background())
	assert.Len(t, res.Items, 2)
	assert.NotEmpty(t, res.Diagnostic)
}

func TestLoad_FallbackIsNotShared(t *testing.T) {
	r := NewResolver(nil, "", nil, nil)
	res := r.Load(context.Background())
	res.Items[0].Name = "mutated"
	assert.Equal(t, "test_3.mp3", FallbackItems[0].Name)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"path":"audio/es/clip.wav","title":"Clip"}]`), 0o644))

	res := NewResolver([]Source{FileSource{Path: path}}, "http://files/audio", nil, nil).Load(context.Background())
	assert.Equal(t, []model.LibraryItem{{Name: "clip.wav", Title: "Clip"}}, res.Items)
	assert.Equal(t, path, res.Source)
}

func TestIndexSource(t *testing.T) {
	page := `<html><body><pre>
		<a href="../">../</a>
		<a href="test_3.mp3">test_3.mp3</a>
		<a href="/audio/sample%20es.WAV">sample es.WAV</a>
		<a href="notes.txt">notes.txt</a>
		<a href="test_3.mp3">test_3.mp3</a>
	</pre></body></html>`
	srv := manifestServer(t, http.StatusOK, page)

	items, err := IndexSource{URL: srv.URL + "/audio/"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.LibraryItem{{Name: "test_3.mp3"}, {Name: "sample es.WAV"}}, items)
}

func TestAudioURL(t *testing.T) {
	r := NewResolver(nil, "http://files/audio/", nil, nil)
	assert.Equal(t, "http://files/audio/test_3.mp3", r.AudioURL("test_3.mp3"))
}

func TestResultFind(t *testing.T) {
	res := Result{Items: []model.LibraryItem{{Name: "a.mp3"}, {Name: "b.mp3", Title: "B"}}}
	it, ok := res.Find("b.mp3")
	require.True(t, ok)
	assert.Equal(t, "B", it.DisplayTitle())
	_, ok = res.Find("zzz")
	assert.False(t, ok)
}
