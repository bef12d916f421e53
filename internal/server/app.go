// Package server initializes and runs the application: it wires the
// content-store client, repositories, and services together and starts the
// HTTP server with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
	"github.com/neverlost-dev/neverlost-api/internal/server/httpapi"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/layouts"
	"github.com/neverlost-dev/neverlost-api/internal/server/repositories/users"
	"github.com/neverlost-dev/neverlost-api/internal/server/services"
	"github.com/neverlost-dev/neverlost-api/internal/server/store"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	storeClient := store.NewHTTPClient(cfg, logger.With("module", "store"))

	userService := services.NewUserService(users.NewStoreRepository(storeClient), cfg, logger.With("module", "users"))
	layoutService := services.NewLayoutService(layouts.NewStoreRepository(storeClient), logger.With("module", "layouts"))

	httpServer := httpapi.NewServer(cfg, logger, userService, layoutService)

	return &App{config: cfg, logger: logger, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "env", app.config.Environment)

	if app.config.UsesFallbackSecret() {
		app.logger.Warn(ctx, "running with the insecure development signing secret; set JWT_SECRET")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
