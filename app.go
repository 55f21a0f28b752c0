package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seleniumguide/catalog"
	"seleniumguide/config"
	"seleniumguide/export"
	"seleniumguide/i18n"
	"seleniumguide/logger"
)

// App owns the configuration, the logger and every registered service.
type App struct {
	cfg    *config.Config
	logger *logger.Logger

	registry      *ServiceRegistry
	notifier      *NotificationCenter
	history       *HistoryService
	exports       *ExportFacadeService
	defaultFormat export.Format

	shutdownOnce sync.Once
}

// NewApp wires the services from cfg. Nothing is opened until Startup.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	defaultFormat, err := export.ParseFormat(cfg.Export.DefaultFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid config: export.default_format: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}
	if cfg.DetailedLog {
		log.SetLevel(zapcore.DebugLevel)
	}

	i18n.SyncLanguageFromConfig(cfg)
	lang := i18n.ParseLanguage(cfg.Language)

	a := &App{
		cfg:           cfg,
		logger:        log,
		defaultFormat: defaultFormat,
	}
	a.notifier = NewNotificationCenter(DefaultNotificationLimit, lang, a.Log)
	a.history = NewHistoryService(cfg.History, a.Log)
	a.exports = NewExportFacadeService(
		catalog.Default(),
		export.DefaultRegistry(),
		a.history,
		a.notifier,
		log,
		cfg.Export.Concurrency,
	)
	return a, nil
}

// Log writes a plain message to the application log.
func (a *App) Log(message string) {
	a.logger.Log(message)
}

// Startup opens the log file, registers services and initializes them.
// A history database that cannot be opened only degrades the app.
func (a *App) Startup(ctx context.Context) error {
	if a.cfg.Log.Dir != "" {
		if err := a.logger.Init(a.cfg.Log.Dir); err != nil {
			return WrapOperationError("init log file", err)
		}
	}

	a.registry = NewServiceRegistry(ctx, a.Log)
	if err := a.registry.Register(a.notifier); err != nil {
		return err
	}
	if err := a.registry.Register(a.history); err != nil {
		return err
	}
	if err := a.registry.RegisterCritical(a.exports); err != nil {
		return err
	}

	if issues := catalog.Default().ValidateAll(); len(issues) > 0 {
		for id, list := range issues {
			for _, issue := range list {
				a.logger.Warn("catalog issue", zap.String("section", id), zap.String("issue", issue.String()))
			}
		}
	}

	if err := a.registry.InitializeAll(); err != nil {
		return err
	}
	if !a.history.Available() && a.cfg.History.Enabled {
		a.logger.Warn(i18n.In(a.notifier.Language(), "history.unavailable"))
	}

	a.logger.Info("startup complete",
		zap.Strings("services", a.registry.Names()),
		zap.String("language", a.notifier.Language().Code()),
		zap.String("default_format", string(a.defaultFormat)))
	return nil
}

// Shutdown stops every service and flushes the log. Safe to call twice.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.registry != nil {
			a.registry.ShutdownAll()
		}
		a.logger.Close()
	})
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv, err := NewServer(a.cfg.Server, a.defaultFormat, a.registry, a.exports, a.notifier, a.logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
