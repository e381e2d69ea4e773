package library

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"s2x/internal/app/model"
)

// Source is one place a manifest may be found.
type Source interface {
	// Name identifies the source in logs and diagnostics.
	Name() string
	// Kind labels the source type: url, file or index.
	Kind() string
	Load(ctx context.Context) ([]model.LibraryItem, error)
}

// URLSource reads a JSON manifest over HTTP, bypassing caches.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Name() string { return s.URL }
func (s URLSource) Kind() string { return "url" }

func (s URLSource) Load(ctx context.Context) ([]model.LibraryItem, error) {
	data, err := fetch(ctx, s.Client, s.URL, "application/json")
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// FileSource reads a JSON manifest from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }
func (s FileSource) Kind() string { return "file" }

func (s FileSource) Load(_ context.Context) ([]model.LibraryItem, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

var audioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a", ".flac", ".webm", ".opus"}

// IndexSource scrapes a directory listing page for links to audio files.
type IndexSource struct {
	URL    string
	Client *http.Client
}

func (s IndexSource) Name() string { return s.URL }
func (s IndexSource) Kind() string { return "index" }

func (s IndexSource) Load(ctx context.Context) ([]model.LibraryItem, error) {
	data, err := fetch(ctx, s.Client, s.URL, "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	var names []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.Path == "" {
			return
		}
		name := path.Base(u.Path)
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		if lo.Contains(audioExtensions, strings.ToLower(path.Ext(name))) {
			names = append(names, name)
		}
	})

	return lo.Map(lo.Uniq(names), func(name string, _ int) model.LibraryItem {
		return model.LibraryItem{Name: name}
	}), nil
}

func fetch(ctx context.Context, client *http.Client, target, accept string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
