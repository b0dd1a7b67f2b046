package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/blindbag/internal/common/clock"
	"github.com/KirkDiggler/blindbag/internal/common/uuid"
	"github.com/KirkDiggler/blindbag/internal/config"
	"github.com/KirkDiggler/blindbag/internal/handlers/discord"
	"github.com/KirkDiggler/blindbag/internal/repositories/pull_ledger"
	"github.com/KirkDiggler/blindbag/internal/server"
	"github.com/KirkDiggler/blindbag/internal/services/bag"
	"github.com/KirkDiggler/blindbag/internal/services/session"
	"github.com/KirkDiggler/blindbag/internal/shuffle"
	"github.com/KirkDiggler/blindbag/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetDefault(cfg.NewLogger(os.Stdout))
	telemetry.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.New()
	ids := uuid.New()

	// Initialize pull ledger
	ledgerCfg := &pull_ledger.Config{
		Driver:        pull_ledger.Driver(cfg.LedgerDriver),
		TTL:           cfg.LedgerTTL,
		Clock:         clk,
		UUIDGenerator: ids,
	}
	if ledgerCfg.Driver == pull_ledger.DriverRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ledgerCfg.RedisClient = redisClient
	}

	ledger, err := pull_ledger.New(ledgerCfg)
	if err != nil {
		slog.Error("failed to create pull ledger", slog.String("driver", cfg.LedgerDriver), slog.Any("error", err))
		os.Exit(1)
	}

	// Sessions own the bag locks, so they come first
	sessionSvc, err := session.New(&session.Config{
		Shuffler:      shuffle.New(&shuffle.Config{}),
		Clock:         clk,
		UUIDGenerator: ids,
	})
	if err != nil {
		slog.Error("failed to create session service", slog.Any("error", err))
		os.Exit(1)
	}

	bagSvc, err := bag.New(&bag.Config{Locks: sessionSvc})
	if err != nil {
		slog.Error("failed to create bag service", slog.Any("error", err))
		os.Exit(1)
	}

	bot, err := discord.New(&discord.Config{
		Token:          cfg.DiscordToken,
		Prefix:         cfg.CommandPrefix,
		BagEmoji:       cfg.BagEmoji,
		FallbackTTL:    cfg.FallbackNoticeTTL,
		BagService:     bagSvc,
		SessionService: sessionSvc,
		Ledger:         ledger,
	})
	if err != nil {
		slog.Error("failed to create Discord bot", slog.Any("error", err))
		os.Exit(1)
	}

	keepAlive, err := server.New(&server.Config{Addr: cfg.ListenAddr()})
	if err != nil {
		slog.Error("failed to create keep-alive server", slog.Any("error", err))
		os.Exit(1)
	}

	go func() {
		if err := keepAlive.Start(); err != nil {
			slog.Error("keep-alive server stopped", slog.Any("error", err))
		}
	}()

	// Start the bot
	if err := bot.Start(); err != nil {
		slog.Error("failed to start Discord bot", slog.Any("error", err))
		os.Exit(1)
	}

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()
	slog.Info("shutting down")

	if err := bot.Stop(); err != nil {
		slog.Error("error stopping bot", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := keepAlive.Shutdown(shutdownCtx); err != nil {
		slog.Error("error stopping keep-alive server", slog.Any("error", err))
	}

	slog.Info("bot has been shut down")
}
