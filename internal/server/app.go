// Package server initializes and runs the FEAS identity server.
// It selects the credential store backend, wires the HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/feas-project/feas-server/internal/logging"
	"github.com/feas-project/feas-server/internal/server/config"
	"github.com/feas-project/feas-server/internal/server/httpapi"
	"github.com/feas-project/feas-server/internal/server/shared/db"
	"github.com/feas-project/feas-server/internal/server/users"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	handler     *httpapi.Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	l := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var manager db.RepositoryManager
	var err error
	if cfg.DatabaseDSN == "" {
		l.Warn(context.Background(), "no database DSN configured, using in-memory store")
		manager = db.NewInMemoryRepositoryManager()
	} else {
		manager, err = db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := users.NewService(manager.Users(), l, cfg)
	h := httpapi.NewHandler(l, us, cfg.CORSAllowedOrigin, Version)

	return &App{config: cfg, logger: l, userService: us, handler: h}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	app.handler.Register(mux)

	var root http.Handler = mux
	root = httpapi.WithCORS(root, app.config.CORSAllowedOrigin)
	root = httpapi.WithRequestLogging(root, app.logger)
	root = httpapi.WithRequestID(root)

	srv := &http.Server{
		Addr:              app.config.EndpointAddr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
