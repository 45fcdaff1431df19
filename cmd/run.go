package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/nextlevelbuilder/dolphbot/internal/bot"
	"github.com/nextlevelbuilder/dolphbot/internal/bus"
	"github.com/nextlevelbuilder/dolphbot/internal/channels/telegram"
	"github.com/nextlevelbuilder/dolphbot/internal/config"
	"github.com/nextlevelbuilder/dolphbot/internal/health"
	"github.com/nextlevelbuilder/dolphbot/internal/profile"
	"github.com/nextlevelbuilder/dolphbot/internal/providers"
	"github.com/nextlevelbuilder/dolphbot/internal/responses"
	"github.com/nextlevelbuilder/dolphbot/internal/updates"
)

func runBot() error {
	_ = godotenv.Load()
	setupLogging(verbose)

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := responses.Load(cfg.Bot.ResponsesPath)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}

	prof := profile.Load(cfg.Bot.ProfilePath)
	if prof == nil {
		slog.Warn("project profile unavailable, AI context will be sparse", "path", cfg.Bot.ProfilePath)
	}

	store := updates.Open(cfg.Bot.UpdatesPath)
	slog.Info("updates store opened", "path", cfg.Bot.UpdatesPath, "records", store.Len())

	var provider providers.Provider
	if cfg.AI.Enabled() {
		provider = providers.NewOpenAIProvider("openai", cfg.AI.APIKey, cfg.AI.APIBase, cfg.AI.Model)
	}
	gateway := bot.NewGateway(provider, prof.Context(), store, bot.GatewayConfig{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})

	msgBus := bus.New()
	channel, err := telegram.New(cfg.Telegram, msgBus)
	if err != nil {
		return err
	}
	dispatcher := bot.NewDispatcher(table, store, gateway, bot.NewCooldown(cfg.Bot.Cooldown()), msgBus, channel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if err := channel.Start(gctx); err != nil {
		return err
	}
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	if cfg.Health.IsEnabled() {
		hs := health.New(cfg.Health.Addr())
		g.Go(func() error {
			return hs.Run(gctx)
		})
	}

	slog.Info("bot running", "ai_enabled", gateway.Enabled())

	err = g.Wait()
	_ = channel.Stop(context.Background())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
