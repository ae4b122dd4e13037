package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/AVN-Software/skern-tag-system/internal/analyze"
	"github.com/AVN-Software/skern-tag-system/internal/audit"
	"github.com/AVN-Software/skern-tag-system/internal/issue"
	"github.com/AVN-Software/skern-tag-system/internal/platform/config"
	"github.com/AVN-Software/skern-tag-system/internal/platform/httpserver"
	"github.com/AVN-Software/skern-tag-system/internal/platform/logger"
	"github.com/AVN-Software/skern-tag-system/internal/platform/metrics"
	"github.com/AVN-Software/skern-tag-system/internal/platform/postgres"
	platformredis "github.com/AVN-Software/skern-tag-system/internal/platform/redis"
	"github.com/AVN-Software/skern-tag-system/internal/registry"
	httpapi "github.com/AVN-Software/skern-tag-system/internal/transport/http"
	"github.com/AVN-Software/skern-tag-system/internal/verify"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("registry store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditPub, auditClose, err := buildAudit(cfg, log)
	if err != nil {
		log.Error("audit sink setup failed", "error", err)
		os.Exit(1)
	}
	defer auditClose()

	m := metrics.New()
	issuer := issue.NewService(store, cfg.Tag, log, m, auditPub)
	verifier := verify.NewService(analyze.New(cfg.Detect), store, log, m, auditPub)

	router := httpapi.NewRouter(httpapi.NewHandler(issuer, verifier, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting skern-tag-system", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore picks the registry backend: postgres when configured, then
// redis, then the in-process store for local development.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (registry.Store, func(), error) {
	db, err := postgres.Open(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		store := registry.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("registry store ready", "backend", "postgres")
		return store, func() { db.Close() }, nil
	}

	client, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		log.Info("registry store ready", "backend", "redis")
		return registry.NewRedisStore(client), func() { client.Close() }, nil
	}

	log.Info("registry store ready", "backend", "memory")
	return registry.NewMemoryStore(), func() {}, nil
}

// buildAudit publishes to Kafka when brokers are configured, otherwise to
// the structured log.
func buildAudit(cfg config.Config, log *slog.Logger) (*audit.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewPublisher(audit.LogSink{Logger: log}), func() {}, nil
	}

	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, nil, err
	}
	log.Info("audit sink ready", "backend", "kafka", "topic", cfg.AuditTopic)
	return audit.NewPublisher(sink), sink.Close, nil
}
