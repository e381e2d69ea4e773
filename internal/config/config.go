package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration
type Config struct {
	// Base address of the transcription service
	APIBase string `yaml:"api_base"`

	// Origin used to build public share links
	ShareOrigin string `yaml:"share_origin"`

	// Base URL the service uses to fetch library audio files
	FilesBase string `yaml:"files_base"`

	Poll      PollConfig    `yaml:"poll"`
	History   HistoryConfig `yaml:"history"`
	Library   LibraryConfig `yaml:"library"`
	Storage   StorageConfig `yaml:"storage"`
	Log       LogConfig     `yaml:"log"`
	ServeAddr string        `yaml:"serve_addr"`
}

// PollConfig controls the job poller
type PollConfig struct {
	Interval               time.Duration `yaml:"interval"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures"`
	MaxBackoff             time.Duration `yaml:"max_backoff"`
	SegmentLimit           int           `yaml:"segment_limit"`
	RequestTimeout         time.Duration `yaml:"request_timeout"`
}

// HistoryConfig selects and configures the history ledger backend
type HistoryConfig struct {
	// sqlite, postgres or redis
	Backend       string `yaml:"backend"`
	SQLitePath    string `yaml:"sqlite_path"`
	PostgresDSN   string `yaml:"postgres_dsn,omitempty"`
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisKey      string `yaml:"redis_key,omitempty"`
}

// LibraryConfig lists manifest sources
type LibraryConfig struct {
	Sources      []string `yaml:"sources"`
	ManifestFile string   `yaml:"manifest_file,omitempty"`
	IndexURLs    []string `yaml:"index_urls,omitempty"`
}

// StorageConfig configures the minio bucket used by upload
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBase:     DefaultAPIBase,
		ShareOrigin: DefaultShareOrigin,
		FilesBase:   DefaultFilesBase,
		Poll: PollConfig{
			Interval:               DefaultPollInterval,
			MaxConsecutiveFailures: DefaultMaxConsecutiveFailures,
			MaxBackoff:             DefaultMaxBackoff,
			SegmentLimit:           DefaultSegmentLimit,
			RequestTimeout:         DefaultHTTPTimeout,
		},
		History: HistoryConfig{
			Backend:    DefaultHistoryBackend,
			SQLitePath: filepath.Join(DefaultDataDir(), "s2x.db"),
			RedisKey:   DefaultRedisKey,
		},
		Library: LibraryConfig{
			Sources: append([]string(nil), DefaultManifestSources...),
		},
		Storage: StorageConfig{
			Endpoint: DefaultMinioEndpoint,
			Bucket:   DefaultMinioBucket,
		},
		Log: LogConfig{
			Level: "info",
		},
		ServeAddr: DefaultServeAddr,
	}
}

// Manager loads and saves the YAML configuration file
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
	}
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration file, creating it with defaults if it does not
// exist. A file that cannot be parsed yields the defaults together with the
// parse error, so callers can warn and carry on.
func (m *Manager) Load() (*Config, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		cfg := Default()
		if err := m.Save(cfg); err != nil {
			m.config = cfg
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		m.config = Default()
		return m.config, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		m.config = Default()
		return m.config, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.expandEnvironmentVariables()
	if err := Validate(cfg); err != nil {
		m.config = Default()
		return m.config, fmt.Errorf("invalid configuration: %w", err)
	}

	m.config = cfg
	return cfg, nil
}

// Save writes cfg to the YAML file
func (m *Manager) Save(cfg *Config) error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.config = cfg
	return nil
}

// Config returns the last loaded or saved configuration
func (m *Manager) Config() *Config {
	return m.config
}

// expandEnvironmentVariables resolves ${VAR} references in secret-bearing fields.
func (c *Config) expandEnvironmentVariables() {
	for _, field := range []*string{
		&c.History.PostgresDSN,
		&c.History.RedisPassword,
		&c.Storage.AccessKey,
		&c.Storage.SecretKey,
	} {
		if strings.Contains(*field, "${") {
			*field = os.ExpandEnv(*field)
		}
	}
}
