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

	"github.com/ainutools/ainconv/internal/cache"
	"github.com/ainutools/ainconv/internal/db/postgres"
	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/ainutools/ainconv/internal/logger"
	"github.com/ainutools/ainconv/internal/metrics"
	"github.com/ainutools/ainconv/internal/web"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("ainconv-web")

	var (
		port        = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL = fs_.StringLong("database-url", "sqlite://ainconv.db", "lexicon database URL (sqlite:// path or postgres://)")
		cacheSize   = fs_.IntLong("cache-size", 4096, "number of cached conversions")
		adminAPIKey = fs_.StringLong("admin-api-key", "", "API key for lexicon writes; empty disables them")
		rateLimit   = fs_.IntLong("rate-limit", 60, "requests per minute per client IP")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	conv, err := cache.New(*cacheSize)
	if err != nil {
		return fmt.Errorf("creating conversion cache: %w", err)
	}

	repo, err := lexicon.OpenRepository(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("opening lexicon database: %w", err)
	}
	defer repo.Close()
	log.InfoContext(ctx, "opened lexicon database")

	if pg, ok := repo.(*postgres.Repository); ok {
		go exportPoolStats(ctx, pg)
	}

	if *adminAPIKey == "" {
		log.WarnContext(ctx, "admin-api-key not set, lexicon writes are disabled")
	}

	router := web.NewRouter(conv, repo, log, web.Config{
		AdminAPIKey: *adminAPIKey,
		RateLimit:   *rateLimit,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router.Handler(ctx.Done()))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
	}()

	log.InfoContext(ctx, "starting web server", "port", *port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// exportPoolStats periodically exports pgxpool stats as Prometheus gauges.
func exportPoolStats(ctx context.Context, repo *postgres.Repository) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := repo.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}
