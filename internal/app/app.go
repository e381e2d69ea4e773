package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"s2x/internal/app/api/remote"
	"s2x/internal/app/identity"
	"s2x/internal/app/jobs"
	"s2x/internal/app/library"
	"s2x/internal/app/logging"
	"s2x/internal/app/metrics"
	"s2x/internal/app/model"
	"s2x/internal/app/repository"
	"s2x/internal/app/repository/pg"
	"s2x/internal/app/repository/redisstore"
	"s2x/internal/app/repository/sqlite"
	"s2x/internal/config"
)

// Options are the command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	APIBase    string
	Verbose    bool
	OnUpdate   func(jobs.Snapshot)
}

// App wires every component of the client together.
type App struct {
	Config      *config.Config
	ConfigPath  string
	Logger      *zap.Logger
	Metrics     *metrics.Collectors
	Store       repository.Store
	Preferences model.Preferences

	Remote       *remote.Client
	Orchestrator *jobs.Orchestrator
	Library      *library.Resolver
	Identity     *identity.Bootstrapper

	// guards Preferences identity fields when served concurrently
	identityMu sync.RWMutex
}

// New builds the application. Unreadable config and an unavailable history
// backend degrade to defaults and an in-memory store; they are logged, not
// returned.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, path, cfgErr := provideConfig(opts.ConfigPath)

	logger, err := provideLogger(cfg, opts.Verbose)
	if err != nil {
		return nil, err
	}
	if cfgErr != nil {
		logger.Warn("config unreadable, using defaults", zap.String("path", path), zap.Error(cfgErr))
	}

	m := metrics.New()
	store := provideStore(ctx, cfg.History, logger)

	prefs := repository.LoadPreferences(ctx, store, model.Preferences{
		Tab: model.DefaultTab,
	}, logger)

	// flag, then env, then `config set-api`, then the config file
	apiBase, _ := lo.Coalesce(opts.APIBase, config.EnvAPIBase(), prefs.APIBase, cfg.APIBase)

	client := remote.NewClient(remote.Config{
		BaseURL: apiBase,
		Timeout: cfg.Poll.RequestTimeout,
	}, logger.Named("remote"))

	orchestratorOpts := []jobs.Option{
		jobs.WithPolicy(jobs.PolicyFromConfig(cfg.Poll)),
		jobs.WithLogger(logger.Named("jobs")),
		jobs.WithMetrics(m),
	}
	if opts.OnUpdate != nil {
		orchestratorOpts = append(orchestratorOpts, jobs.WithUpdateHook(opts.OnUpdate))
	}

	return &App{
		Config:       cfg,
		ConfigPath:   path,
		Logger:       logger,
		Metrics:      m,
		Store:        store,
		Preferences:  prefs,
		Remote:       client,
		Orchestrator: jobs.NewOrchestrator(client, store, orchestratorOpts...),
		Library:      library.FromConfig(cfg.Library, cfg.FilesBase, cfg.Poll.RequestTimeout, logger.Named("library"), m),
		Identity:     identity.New(client, store, logger.Named("identity")),
	}, nil
}

// EnsureIdentity bootstraps the user and project when missing.
func (a *App) EnsureIdentity(ctx context.Context, force bool) error {
	a.identityMu.Lock()
	defer a.identityMu.Unlock()

	prefs, err := a.Identity.Ensure(ctx, a.Preferences, force)
	if err != nil {
		return err
	}
	a.Preferences = prefs
	return nil
}

// SavePreferences persists the current preferences.
func (a *App) SavePreferences(ctx context.Context) error {
	return repository.SavePreferences(ctx, a.Store, a.Preferences)
}

// ShareLink renders the public address of a share token.
func (a *App) ShareLink(token string) string {
	return jobs.ShareLink(a.Config.ShareOrigin, token)
}

// UserID returns the bootstrapped user id or "".
func (a *App) UserID() string {
	a.identityMu.RLock()
	defer a.identityMu.RUnlock()
	if a.Preferences.User == nil {
		return ""
	}
	return a.Preferences.User.ID
}

// ProjectID returns the bootstrapped project id or "".
func (a *App) ProjectID() string {
	a.identityMu.RLock()
	defer a.identityMu.RUnlock()
	if a.Preferences.Project == nil {
		return ""
	}
	return a.Preferences.Project.ID
}

// NewSubmitRequest fills project and defaults for a submission.
func (a *App) NewSubmitRequest(audioURL string) jobs.SubmitRequest {
	return jobs.SubmitRequest{
		AudioURL:  audioURL,
		ProjectID: a.ProjectID(),
		BeamSize:  jobs.DefaultBeamSize,
	}
}

// Close stops polling and releases the store.
func (a *App) Close() error {
	a.Orchestrator.Close()
	err := a.Store.Close()
	a.Logger.Sync()
	return err
}

func provideConfig(path string) (*config.Config, string, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	manager := config.NewManager(path)
	cfg, err := manager.Load()
	if cfg == nil {
		cfg = config.Default()
	}
	config.ApplyEnv(cfg)
	return cfg, path, err
}

func provideLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func provideStore(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) repository.Store {
	var (
		store repository.Store
		err   error
	)

	switch cfg.Backend {
	case "postgres":
		store, err = pg.Open(ctx, cfg.PostgresDSN, logger)
	case "redis":
		store, err = redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		}, logger)
	case "memory":
		return repository.NewMemoryStore()
	default:
		store, err = sqlite.Open(ctx, cfg.SQLitePath, logger)
	}

	if err != nil {
		logger.Warn("history backend unavailable, keeping history in memory",
			zap.String("backend", cfg.Backend),
			zap.Error(err))
		return repository.NewMemoryStore()
	}
	return store
}
