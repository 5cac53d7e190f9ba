package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/dayoung-lee/taskboard/internal/config"
	taskhttp "github.com/dayoung-lee/taskboard/internal/http"
	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/repository"
	"github.com/dayoung-lee/taskboard/internal/service"
	"github.com/dayoung-lee/taskboard/internal/storage"
	"github.com/dayoung-lee/taskboard/internal/token"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"storage_driver", cfg.Storage.Driver,
		"token_scheme", cfg.Token.Scheme,
		"log_level", cfg.LogLevel,
	)

	// Storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("storage opened", "driver", cfg.Storage.Driver)

	// Repositories
	userRepo := repository.NewKVUser(store, cfg.SeedDemo)
	taskRepo := repository.NewKVTask(store, cfg.SeedDemo)

	// Token issuer
	issuer, err := newIssuer(cfg)
	if err != nil {
		return err
	}

	// Services
	authSvc := service.NewAuthService(userRepo, issuer)
	taskSvc := service.NewTaskService(taskRepo)

	// Auth middleware
	auth := middleware.NewAuth(issuer)

	// HTTP Server
	srv := taskhttp.NewServer(cfg.ServerPort, logger, authSvc, taskSvc, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

func openStore(cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "file":
		path := cfg.Storage.Path
		if path == "" {
			path = storage.DefaultPath()
		}
		st, err := storage.OpenFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return st, func() {}, nil
	case "postgres":
		st, err := storage.OpenPostgres(cfg.DB.DSN())
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newIssuer(cfg config.Config) (token.Issuer, error) {
	switch cfg.Token.Scheme {
	case "jwt":
		return token.NewJWT(cfg.Token.Secret)
	default:
		return token.NewPrefix(), nil
	}
}
