package config

import "time"

// Client default configuration constants
const (
	// Remote service defaults
	DefaultAPIBase     = "http://localhost:8000"
	DefaultShareOrigin = "http://localhost:5173"
	DefaultFilesBase   = "http://files/audio"
	DefaultHTTPTimeout = 30 * time.Second

	// Polling defaults
	DefaultPollInterval           = 1200 * time.Millisecond
	DefaultMaxConsecutiveFailures = 25
	DefaultMaxBackoff             = 30 * time.Second
	DefaultSegmentLimit           = 2000

	// History defaults
	DefaultHistoryBackend = "sqlite"
	DefaultRedisKey       = "s2x:history"

	// Storage defaults
	DefaultMinioEndpoint = "localhost:9000"
	DefaultMinioBucket   = "s2x-audio"

	// Local API defaults
	DefaultServeAddr = "127.0.0.1:8090"
)

// DefaultManifestSources are tried in order by the library resolver.
var DefaultManifestSources = []string{
	"http://localhost:5173/audio/_manifest.json",
	"http://localhost:8081/audio/_manifest.json",
}
