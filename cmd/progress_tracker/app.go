package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/course-progress/internal/catalog"
	"github.com/jonathan/course-progress/internal/config"
	"github.com/jonathan/course-progress/internal/crawling"
	"github.com/jonathan/course-progress/internal/db"
	"github.com/jonathan/course-progress/internal/fetch"
	"github.com/jonathan/course-progress/internal/logger"
	"github.com/jonathan/course-progress/internal/observability"
	"github.com/jonathan/course-progress/internal/progress"
	"github.com/jonathan/course-progress/internal/session"
	"github.com/jonathan/course-progress/internal/store"
	"github.com/spf13/cobra"
)

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg      config.Config
	log      logger.Logger
	catalog  *catalog.Catalog
	progress *progress.Store
	session  *session.Session
	printer  *observability.Printer
	out      io.Writer
	closers  []func()
}

// loadConfig merges the config file, the environment, and root flags, in
// increasing order of precedence.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv(os.Getenv)

	if rootStoreBackend != "" {
		cfg.StoreBackend = rootStoreBackend
	}
	if rootStorePath != "" {
		cfg.StorePath = rootStorePath
	}
	if rootCatalogPath != "" {
		cfg.CatalogPath = rootCatalogPath
	}
	if rootUseBrowser {
		cfg.UseBrowser = true
	}
	if rootNoCache {
		cfg.PageCacheTTL = "0"
	}
	if rootVerbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp builds the app for a command from its flags and output streams.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, cmd.OutOrStdout())
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Verbose})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, out: out}

	a.catalog = catalog.Default()
	if cfg.CatalogPath != "" {
		if a.catalog, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	backing, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)
	kv := store.WithPrefix(backing, cfg.KeyPrefix)

	fetcher := newFetcher(cfg, kv)
	inferrer, err := crawling.NewInferrer(cfg.Prefix(), fetcher, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	aggregator := crawling.NewAggregator(fetcher,
		crawling.WithInferrer(inferrer),
		crawling.WithLogger(log),
	)

	a.progress = progress.New(kv)
	a.session = session.New(a.catalog, aggregator, a.progress,
		session.WithLogger(log),
		session.WithDeadline(cfg.DeadlineTime(progress.DefaultDeadline)),
	)

	theme, err := a.progress.Theme(ctx)
	if err != nil {
		log.Warn("Could not read theme preference", logger.Err(err))
	}
	a.printer = observability.NewPrinter(out, theme)
	return a, nil
}

// newFetcher stacks the page fetchers: HTTP, optional browser rendering,
// then the page cache when enabled.
func newFetcher(cfg config.Config, kv store.Store) crawling.PageFetcher {
	client := fetch.NewClient(&fetch.Options{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.UserAgent,
	})

	var fetcher crawling.PageFetcher = client
	if cfg.UseBrowser {
		fetcher = fetch.NewBrowserFetcher(client, cfg.Timeout())
	}
	if ttl := cfg.CacheTTL(); ttl > 0 {
		fetcher = fetch.NewCachedFetcher(fetcher, kv, &fetch.CachedFetcherConfig{CacheTTL: ttl})
	}
	return fetcher
}

func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil

	case config.BackendRedis:
		r, err := store.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return r, func() { _ = r.Close() }, nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		kv := db.NewKVStore(database)
		if purged, err := kv.PurgeExpired(ctx); err != nil {
			log.Warn("Failed to purge expired progress", logger.Err(err))
		} else if purged > 0 {
			log.Debug("Purged expired progress", logger.Int("rows", int(purged)))
		}
		return kv, database.Close, nil

	default:
		log.Debug("Using file store", logger.String("path", cfg.StorePath))
		return store.NewFile(cfg.StorePath), func() {}, nil
	}
}

// Close releases the store and flushes logs.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}
