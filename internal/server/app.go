// Package server initializes and runs the chat API server: it opens the
// record store, applies migrations, wires the services and realtime feed,
// and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/okunev/chatlite/internal/logging"
	"github.com/okunev/chatlite/internal/server/config"
	"github.com/okunev/chatlite/internal/server/feed"
	"github.com/okunev/chatlite/internal/server/httpapi"
	"github.com/okunev/chatlite/internal/server/repositories/repomanager"
	"github.com/okunev/chatlite/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
	db         *sql.DB
}

func NewApp(c *config.Config) (*App, error) {

	handler := slog.NewJSONHandler(os.Stdout, nil)
	logger := logging.NewSlogLogger(slog.New(handler))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hub := feed.NewHub()

	accounts := services.NewAccountService(db, rm)
	messages := services.NewMessageService(db, rm, hub)
	presence := services.NewPresenceService(db, rm, hub, c.PresenceOnlineWindow, c.TypingTTL)
	avatars := services.NewAvatarService(c)
	sessions := services.NewSessionService(c)

	httpServer := httpapi.NewHTTPServer(
		c.EndpointAddrHTTP, logger,
		accounts, messages, presence, avatars, sessions,
		hub, c.DefaultChannel,
	)

	return &App{config: c, logger: logger, httpServer: httpServer, db: db}, nil
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

	app.logger.Info(ctx, "Starting app...")

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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
