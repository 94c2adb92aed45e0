package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/db"
	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/httpserver"
	"github.com/Skotchmaster/auth_service/internal/logging"
	mwauth "github.com/Skotchmaster/auth_service/internal/middleware/auth"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.UserEventsTopic, logger)

	gormRepo := repo.New(gdb)
	hasher := hash.New()
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	users := &service.UserService{Repo: gormRepo, Hasher: hasher, Events: publisher}
	auth := &service.AuthService{
		Users:       gormRepo,
		Revocations: gormRepo,
		Tokens:      issuer,
		Hasher:      hasher,
		Events:      publisher,
	}

	e := httpserver.New(&httpserver.Deps{
		DB:             gdb,
		Logger:         logger,
		Gateway:        mwauth.NewGateway(issuer, gormRepo, users),
		AuthHandler:    &httpserver.AuthHTTP{Svc: auth},
		UserHandler:    &httpserver.UserHTTP{Svc: users},
		RequestTimeout: cfg.RequestTimeout,
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		logger.Info("http_server_started", "addr", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown_failed", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("events_close_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("shutdown_complete")
}
