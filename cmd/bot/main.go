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

	"github.com/ainutools/ainconv/internal/bot"
	"github.com/ainutools/ainconv/internal/cache"
	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/envsetup"
	"github.com/ainutools/ainconv/internal/health"
	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/ainutools/ainconv/internal/logger"
	"github.com/bwmarrin/discordgo"
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
}

func mainE() error {
	if len(os.Args) == 1 && os.Getenv("DISCORD_TOKEN") == "" && envsetup.NeedsSetup(".env") {
		saved, err := envsetup.Run(".env")
		if err != nil {
			return fmt.Errorf("running env setup: %w", err)
		}
		if !saved {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("ainconv-bot")

	var (
		discordToken = fs.StringLong("discord-token", "", "Discord bot token")
		guildID      = fs.StringLong("guild-id", "", "register commands to this guild only")
		databaseURL  = fs.StringLong("database-url", "", "lexicon database URL; empty disables /lookup")
		cacheSize    = fs.IntLong("cache-size", 4096, "number of cached conversions")
		healthPort   = fs.IntLong("health-port", 8081, "health check port")
		metricsPort  = fs.IntLong("metrics-port", 9090, "Prometheus metrics port")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	conv, err := cache.New(*cacheSize)
	if err != nil {
		return fmt.Errorf("creating conversion cache: %w", err)
	}

	checks := map[string]health.Check{}

	var repo db.Repository
	if *databaseURL != "" {
		repo, err = lexicon.OpenRepository(ctx, *databaseURL)
		if err != nil {
			return fmt.Errorf("opening lexicon database: %w", err)
		}
		defer repo.Close()
		log.InfoContext(ctx, "opened lexicon database")

		checks["lexicon"] = func(ctx context.Context) error {
			_, err := repo.CountEntries(ctx, "")
			return err
		}
	}

	dg, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}

	healthServer := health.New(*healthPort, checks)
	go func() {
		log.InfoContext(ctx, "starting health server", "port", *healthPort)
		if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "health server error", "error", err)
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", *metricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.InfoContext(ctx, "starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig)
		cancel(errors.New("signal received"))
	}()

	b := bot.New(bot.NewLogger(log), bot.NewDiscordSession(dg), conv, repo, bot.Config{GuildID: *guildID})
	runErr := b.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("health server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown error", "error", err)
	}

	return runErr
}
