package library

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/metrics"
	"s2x/internal/app/model"
	"s2x/internal/config"
)

// FallbackItems is returned when no source yields a usable manifest.
var FallbackItems = []model.LibraryItem{
	{Name: "test_3.mp3", Title: "Local sample (served by files)", Hint: "Place this file in the audio directory"},
	{Name: "sample_es.mp3", Title: "Sample 2", Hint: "Copy a file with this name to try it"},
}

// Result is the outcome of a manifest load. It always carries items.
type Result struct {
	Items      []model.LibraryItem `json:"items"`
	Source     string              `json:"source,omitempty"`
	Diagnostic string              `json:"diagnostic,omitempty"`
	Err        error               `json:"-"`
}

// Fallback reports whether the items are the built-in fallback set.
func (r Result) Fallback() bool {
	return r.Source == ""
}

// Resolver tries an ordered list of manifest sources.
type Resolver struct {
	sources   []Source
	filesBase string
	logger    *zap.Logger
	metrics   *metrics.Collectors
}

// NewResolver builds a resolver over the given sources.
func NewResolver(sources []Source, filesBase string, logger *zap.Logger, m *metrics.Collectors) *Resolver {
	return &Resolver{
		sources:   sources,
		filesBase: strings.TrimRight(filesBase, "/"),
		logger:    logging.OrNop(logger),
		metrics:   m,
	}
}

// FromConfig orders sources as: manifest URLs, local manifest file, index pages.
func FromConfig(cfg config.LibraryConfig, filesBase string, timeout time.Duration, logger *zap.Logger, m *metrics.Collectors) *Resolver {
	client := &http.Client{Timeout: timeout}

	sources := lo.Map(cfg.Sources, func(u string, _ int) Source {
		return URLSource{URL: u, Client: client}
	})
	if cfg.ManifestFile != "" {
		sources = append(sources, FileSource{Path: cfg.ManifestFile})
	}
	for _, u := range cfg.IndexURLs {
		sources = append(sources, IndexSource{URL: u, Client: client})
	}
	return NewResolver(sources, filesBase, logger, m)
}

// Load returns the first non-empty normalized list. Failing or empty sources
// are skipped; when all are exhausted the fallback set is returned with a
// diagnostic. Load never fails.
func (r *Resolver) Load(ctx context.Context) Result {
	for _, src := range r.sources {
		items, err := src.Load(ctx)
		if err != nil {
			r.logger.Debug("manifest source failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		if len(items) == 0 {
			r.logger.Debug("manifest source empty", zap.String("source", src.Name()))
			continue
		}
		r.metrics.ManifestLoad(src.Kind())
		return Result{Items: items, Source: src.Name()}
	}

	r.metrics.ManifestLoad("fallback")
	tried := lo.Map(r.sources, func(s Source, _ int) string { return s.Name() })
	diagnostic := fmt.Sprintf(
		"no usable manifest found (tried %s); expected a JSON array of file names or {name, title?} objects",
		strings.Join(tried, ", "))
	if len(tried) == 0 {
		diagnostic = "no manifest sources configured; expected a JSON array of file names or {name, title?} objects"
	}

	items := make([]model.LibraryItem, len(FallbackItems))
	copy(items, FallbackItems)
	return Result{
		Items:      items,
		Diagnostic: diagnostic,
		Err:        apperrors.ErrManifestUnavailable,
	}
}

// AudioURL is the address the service fetches a library file from.
func (r *Resolver) AudioURL(name string) string {
	return r.filesBase + "/" + strings.TrimLeft(name, "/")
}

// Find looks an item up by name in a loaded result.
func (r Result) Find(name string) (model.LibraryItem, bool) {
	return lo.Find(r.Items, func(it model.LibraryItem) bool { return it.Name == name })
}
