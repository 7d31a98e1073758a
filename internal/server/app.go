// Package server initializes and runs the application: configuration,
// database, migrations, services and the HTTP endpoint, with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opennote-dev/opennote/internal/logging"
	"github.com/opennote-dev/opennote/internal/server/auth"
	"github.com/opennote-dev/opennote/internal/server/config"
	"github.com/opennote-dev/opennote/internal/server/httpapi"
	"github.com/opennote-dev/opennote/internal/server/repositories/repomanager"
	"github.com/opennote-dev/opennote/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// driverFor maps a configured adapter to its database/sql driver name. The
// drivers themselves are registered by the repomanager blank imports.
func driverFor(adapter string) (string, error) {
	switch adapter {
	case config.AdapterPostgres:
		return "pgx", nil
	case config.AdapterSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unknown database adapter %q", adapter)
	}
}

func managerFor(adapter string) (repomanager.RepositoryManager, error) {
	switch adapter {
	case config.AdapterPostgres:
		return repomanager.NewPostgresRepositoryManager(), nil
	case config.AdapterSQLite:
		return repomanager.NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown database adapter %q", adapter)
	}
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	driver, err := driverFor(cfg.DatabaseAdapter)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m, err := managerFor(cfg.DatabaseAdapter)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	codec := auth.NewCodec([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	userService := services.NewUserService(db, m, codec, cfg.RefreshTokenValidityDuration)
	noteService := services.NewNoteService(db, m)

	srv := httpapi.NewServer(cfg.EndpointAddr, logger, codec, userService, noteService, httpapi.FilterConfig{
		BypassPrefixes: []string{"/health"},
		PublicPaths:    []string{"/users/", "/access-token/login"},
	})

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
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
	defer cancelFunc()

	app.logger.Info(ctx, "starting app",
		"addr", app.config.EndpointAddr,
		"adapter", app.config.DatabaseAdapter,
	)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "app stopped")
}
