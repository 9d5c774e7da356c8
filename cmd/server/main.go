package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"correlativos/internal/catalog"
	"correlativos/internal/correlative"
	"correlativos/internal/correlative/store"
	counterstore "correlativos/internal/correlative/store/counter"
	issuancestore "correlativos/internal/correlative/store/issuance"
	"correlativos/internal/platform/config"
	"correlativos/internal/platform/httpserver"
	"correlativos/internal/platform/logger"
	platformMetrics "correlativos/internal/platform/metrics"
	"correlativos/internal/storage"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	catalogStore := catalog.NewPostgres(db)
	if cfg.SeedCatalog {
		if err := catalog.Seed(ctx, catalogStore, catalog.DefaultTypes()); err != nil {
			log.Error("failed to seed activity types", "error", err)
			os.Exit(1)
		}
	}

	svc, err := correlative.NewService(
		counterstore.NewPostgres(db),
		issuancestore.NewPostgres(db),
		catalogStore,
		store.NewPostgresTx(db),
		correlative.WithLogger(log),
		correlative.WithMetrics(correlative.NewMetrics()),
		correlative.WithRetry(cfg.RetryAttempts, cfg.RetryBackoff),
	)
	if err != nil {
		log.Error("failed to build correlative service", "error", err)
		os.Exit(1)
	}

	httpMetrics := platformMetrics.New()
	handler := correlative.NewHandler(svc, log, httpMetrics)

	router := chi.NewRouter()
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting correlativos service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
