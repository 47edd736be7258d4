// Package server wires the WalletGate application together: storage,
// identity provider client, and services, with graceful shutdown on OS
// signals. Transport (routing, marshaling, CORS, health endpoints) is an
// external collaborator and lives outside this module.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/apetrovs/walletgate/internal/logging"
	"github.com/apetrovs/walletgate/internal/server/config"
	"github.com/apetrovs/walletgate/internal/server/identity"
	"github.com/apetrovs/walletgate/internal/server/repositories/repomanager"
	"github.com/apetrovs/walletgate/internal/server/services"
)

// App owns the constructed dependency graph. All collaborators are built
// once here and injected; nothing is a package-level singleton.
type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  repomanager.RepositoryManager
	Sessions *services.SessionService
	Wallets  *services.WalletService
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	manager, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	provider := identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey, cfg.IdentityTimeout, logger)

	sessions := services.NewSessionService(manager.Users(), provider, cfg, logger)
	wallets := services.NewWalletService(manager.Wallets(), logger)

	return &App{
		config:   cfg,
		logger:   logger,
		manager:  manager,
		Sessions: sessions,
		Wallets:  wallets,
	}, nil
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

// Run blocks until the context is cancelled or a termination signal
// arrives, then closes the database connection.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	<-ctx.Done()

	app.logger.Info(ctx, "Stopping app...")

	if db := app.manager.Conn(); db != nil {
		if err := db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
