package main

import (
	"fmt"
	"log/slog"
	"os"

	log "github.com/charmbracelet/log"
	infrarepo "github.com/walletmaster/backend/infra/repository"
	"github.com/walletmaster/backend/infra/repository/memory"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/provider/google"
	"github.com/walletmaster/backend/pkg/repository"
	authsvc "github.com/walletmaster/backend/pkg/service/auth"
	txsvc "github.com/walletmaster/backend/pkg/service/transaction"
	usersvc "github.com/walletmaster/backend/pkg/service/user"
	"github.com/walletmaster/backend/webapi"
)

// @title Wallet Backend API
// @version 1.0.0
// @description REST backend with Google OAuth login, JWT sessions, and
// @description user/transaction CRUD.
// @host localhost:3001
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	verifier := google.New(cfg.Google, logger)
	authService := authsvc.New(store.Users(), verifier, cfg.Jwt, logger)
	userService := usersvc.New(store.Users(), logger)
	txService := txsvc.New(store.Transactions(), logger)

	app := webapi.SetupApp(cfg, authService, userService, txService)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"storage_driver", cfg.Storage.Driver,
	)
	return app.Listen(addr)
}

// newStorage selects the backend at startup. The store is constructed here
// and injected; nothing holds it in package state.
func newStorage(cfg *config.App) (repository.Storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewStorage(), nil
	case "postgres":
		db, err := infrarepo.NewDBConnection(cfg.DB.Url)
		if err != nil {
			return nil, err
		}
		return infrarepo.NewStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newLogger(cfg *config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
