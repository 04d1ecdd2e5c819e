// Package app wires configuration, logging, storage and the reminder service
// for the command-line binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/notexe/lembretes/internal/config"
	"github.com/notexe/lembretes/internal/kv"
	"github.com/notexe/lembretes/internal/logging"
	"github.com/notexe/lembretes/internal/recurrence"
	"github.com/notexe/lembretes/internal/reminder"
	"github.com/notexe/lembretes/internal/scheduler"
)

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *reminder.Store
	Service *reminder.Service
}

// Open loads and validates the config at configPath and opens the store it
// names. Callers must Close the returned App.
func Open(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return New(cfg)
}

// New builds an App from an already loaded config.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	backend, err := kv.New(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	defaults := reminder.DefaultSettings()
	defaults.Language = recurrence.Language(cfg.Locale.Language)

	store := reminder.NewStore(backend, logger,
		reminder.WithNamespace(cfg.Storage.Namespace),
		reminder.WithDefaultSettings(defaults),
		reminder.WithLocation(loc))
	service := reminder.NewService(store, logger,
		reminder.WithClock(func() time.Time { return time.Now().In(loc) }))

	logger.Debug("storage opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.String("timezone", loc.String()))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Service: service,
	}, nil
}

// Scheduler returns a scheduler delivering through Telegram.
func (a *App) Scheduler() *scheduler.Scheduler {
	tg := a.Config.Scheduler.Telegram
	sender := scheduler.NewTelegramSender(tg.BotToken, tg.ChatID, tg.BaseURL)
	return scheduler.New(a.Service, sender, a.Config.SchedulerInterval(), a.Logger)
}

// StartScheduler runs the scheduler in the background when scheduler.enabled
// is set. The returned stop cancels it and waits for it to exit; it is a no-op
// when nothing was started.
func (a *App) StartScheduler(ctx context.Context) (stop func()) {
	if !a.Config.Scheduler.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.Scheduler().Run(ctx); err != nil {
			a.Logger.Error("scheduler stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.Store.Close()
}
