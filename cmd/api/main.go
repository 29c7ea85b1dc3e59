package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/config"
	"mawasim-api/internal/db"
	"mawasim-api/internal/events"
	"mawasim-api/internal/httpserver"
	"mawasim-api/internal/metrics"
	"mawasim-api/internal/ratelimit"
	orderrepo "mawasim-api/internal/repository/order"
	ordersvc "mawasim-api/internal/service/order"
	reportsvc "mawasim-api/internal/service/report"
)

func main() {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.AdminSecret == "" {
		logger.Printf("ADMIN_SECRET not set: admin API disabled")
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	logger.Printf("catalog loaded: %d products", cat.Len())

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	limiter := ratelimit.NewMemory(cfg.RateLimitMax, cfg.RateLimitWindow)
	go func() {
		ticker := time.NewTicker(cfg.RateLimitWindow)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Purge()
		}
	}()

	var publisher events.Publisher
	if cfg.KafkaBrokers != "" {
		kp := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		logger.Printf("order events enabled: brokers=%s topic=%s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	repo := orderrepo.NewPostgres(dbpool, logger)
	orderService := ordersvc.New(repo, cat, limiter, publisher, logger)
	reportService := reportsvc.New(repo)
	intake := metrics.NewIntake(prometheus.DefaultRegisterer)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:        cat,
		OrderSvc:       orderService,
		ReportSvc:      reportService,
		Intake:         intake,
		StoreName:      cfg.StoreName,
		AdminSecret:    cfg.AdminSecret,
		APISecret:      cfg.APISecret,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
