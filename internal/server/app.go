// Package server initializes and runs the application: it wires the stores,
// services and HTTP server together and handles graceful shutdown.
package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"taskkeeper/internal/logging"
	"taskkeeper/internal/server/auth"
	"taskkeeper/internal/server/config"
	"taskkeeper/internal/server/repositories/todos"
	"taskkeeper/internal/server/repositories/users"
	"taskkeeper/internal/server/services"
	"taskkeeper/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	web    *web.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	issuer := auth.NewTokenIssuer(
		[]byte(cfg.SecretKey),
		cfg.TokenIssuer,
		cfg.TokenAudience,
		cfg.AccessTokenValidityDuration,
	)

	accountStore := users.NewFileRepository(cfg.UsersFilePath)
	recordStore := todos.NewFileRepository(cfg.TodosFilePath)

	userService := services.NewUserService(accountStore, issuer)
	todoService := services.NewTodoService(recordStore)

	webServer := web.NewServer(cfg.EndpointAddr, logger, issuer, userService, todoService)

	return &App{config: cfg, logger: logger, web: webServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.web.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
