// Command prune deletes revocation records whose expiry has passed.
// It is safe to run while the server is serving traffic.
package main

import (
	"context"
	"log"
	"time"

	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/db"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/repo"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "job", "prune_revoked")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	removed, err := repo.New(gdb).PruneRevoked(ctx, time.Now())
	if err != nil {
		logger.Error("prune_failed", "error", err)
		return
	}
	logger.Info("prune_complete", "removed", removed)
}
