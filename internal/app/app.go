package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofrs/flock"

	"MenuScanner/internal/api"
	"MenuScanner/internal/config"
	"MenuScanner/internal/infrastructure/extract"
	"MenuScanner/internal/infrastructure/fetch"
	"MenuScanner/internal/infrastructure/parser"
	"MenuScanner/internal/infrastructure/scheduler"
	"MenuScanner/internal/infrastructure/storage"
	"MenuScanner/internal/infrastructure/telegram"
	"MenuScanner/internal/logging"
	"MenuScanner/internal/menu"
	"MenuScanner/internal/ports"
	"MenuScanner/internal/scanner"
	"MenuScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	catalog  *usecase.Catalog
	cache    *storage.SQLiteCache
}

// New builds the adapters and use cases described by cfg.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}

	registry := scanner.NewRegistry()
	registry.Register(parser.NewCateringScanner(client, cfg.Fetch.UserAgent))

	source := parser.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	extractor, err := extract.New(cfg.Extract.Engine, cfg.Extract.Binary)
	if err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	var cache ports.DocumentCache
	if cfg.Cache.Path != "" {
		a.cache, err = storage.OpenSQLiteCache(ctx, cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		cache = a.cache
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:      source,
		Downloader:  fetch.NewHTTPDownloaderWithClient(client, cfg.Fetch.UserAgent),
		Extractor:   extractor,
		Cache:       cache,
		Parser:      menu.NewParser(menu.NewClassifier(cfg.Parser.NoiseKeywords...)),
		Logger:      baseLogger.With("component", "pipeline"),
		Concurrency: cfg.Fetch.Concurrency,
	})
	a.catalog = usecase.NewCatalog(a.pipeline, cfg.Scheduler.Location())

	return a, nil
}

// Catalog exposes the query side for one-shot commands.
func (a *Application) Catalog() *usecase.Catalog {
	return a.catalog
}

// Close releases the cache database, if one was opened.
func (a *Application) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// Serve starts the refresh scheduler, the HTTP API and the optional Telegram
// webhook, and blocks until ctx is canceled or the server fails. With a cache
// configured only one server may run against it at a time.
func (a *Application) Serve(ctx context.Context) error {
	if a.cfg.Cache.Path != "" {
		lock := flock.New(a.cfg.Cache.Path + ".lock")
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another server is already using %s", a.cfg.Cache.Path)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				a.logger.Warn("failed to release serve lock", "error", err)
			}
		}()
	}

	var pruner usecase.Pruner
	if a.cache != nil {
		pruner = a.cache
	}
	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval),
		a.catalog,
		pruner,
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		if err := sched.Stop(context.Background()); err != nil {
			a.logger.Warn("scheduler stop", "error", err)
		}
	}()

	server := api.NewServer(a.catalog, a.cfg.Server.AllowOrigin, a.logger.With("component", "api"))

	if tg := a.cfg.Telegram; tg.Enabled() {
		bot, err := telegram.NewBot(tg.BotToken, tg.WebhookURL, a.catalog, tg.AllowedChatIDs, a.logger.With("component", "telegram"))
		if err != nil {
			return err
		}
		server.Mount("POST "+tg.WebhookPath, bot)
	}

	return server.ListenAndServe(ctx, a.cfg.Server.Listen)
}
