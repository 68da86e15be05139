// Package server wires configuration, storage, services and the HTTP layer
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/logging"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/metrics"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/repomanager"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/rest"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/services"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/shared/db"
)

const storeInitTimeout = 10 * time.Second

// connectMongo is a seam for tests.
var connectMongo = db.Connect

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	http   *rest.Server
}

func newStore(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	case config.StoreMongo, "":
		client, err := connectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repomanager.NewMongoRepositoryManager(client, cfg.DatabaseName), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewApp opens the store, prepares its indexes and builds the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	initCtx, cancel := context.WithTimeout(ctx, storeInitTimeout)
	defer cancel()

	store, err := newStore(initCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.EnsureIndexes(initCtx); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if cfg.SecretKey == "" {
		logger.Warn(ctx, "session secret is not set, tokens cannot be issued")
	}

	svc := rest.Services{
		Sessions:  services.NewSessionService(cfg),
		Food:      services.NewFoodService(store, logger.With("module", "food_service")),
		Added:     services.NewRecordService(store.AddedFood()),
		Requested: services.NewRecordService(store.RequestedFood()),
	}
	if cfg.UploadsEnabled() {
		svc.Images = services.NewImageService(cfg)
	}

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
		http:   rest.NewServer(cfg, logger, svc, metrics.NewRegistry()),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// shuts the HTTP server down and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDriver)

	stopSignals := app.initSignalHandler(cancelFunc)
	defer stopSignals()

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.store.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "store close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
