package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/euroexplorer-bot/internal/config"
	"github.com/aliskhannn/euroexplorer-bot/internal/content"
	"github.com/aliskhannn/euroexplorer-bot/internal/delivery/telegram"
	"github.com/aliskhannn/euroexplorer-bot/internal/geo"
	"github.com/aliskhannn/euroexplorer-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/euroexplorer-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/euroexplorer-bot/internal/logger"
	"github.com/aliskhannn/euroexplorer-bot/internal/service"
	"github.com/aliskhannn/euroexplorer-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Content generation.
	gen, err := content.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	contentClient := content.NewClient(gen, lg.Named("content"), content.Options{
		Model:      cfg.Gemini.Model,
		QuizLength: cfg.Quiz.Length,
		Retry: content.RetryPolicy{
			MaxAttempts: cfg.Gemini.MaxAttempts,
			BaseDelay:   cfg.Gemini.BaseDelay,
			MaxJitter:   cfg.Gemini.MaxJitter,
		},
	})

	// Quiz results: Postgres when configured, memory otherwise.
	var scores service.ScoreStore
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		scores = pgrepo.NewScoreStore(pool)
		lg.Info("quiz results stored in postgres")
	} else {
		scores = storage.NewScoreStorage()
		lg.Info("DATABASE_URL not set, quiz results kept in memory")
	}

	catalog := geo.NewCatalog(cfg.Geo.TopologyURL, &http.Client{Timeout: 30 * time.Second}, lg.Named("geo"))
	sessions := storage.NewSessionStore()

	explorer := service.NewExplorerService(
		contentClient,
		storage.NewFactsCache(),
		scores,
		sessions,
		lg.Named("explorer"),
	)
	defer explorer.Shutdown()

	renderer := telegram.NewRenderer(bot, catalog, lg.Named("render"), cfg.Session.BannerTTL)
	explorer.SetRenderer(renderer)

	handler := telegram.NewHandler(bot, lg, explorer, catalog, renderer)

	maintenance := service.NewMaintenanceService(sessions, catalog, service.MaintenanceConfig{
		SessionIdleTTL:  cfg.Session.IdleTTL,
		SweepSchedule:   cfg.Session.SweepSchedule,
		RefreshSchedule: cfg.Geo.RefreshSchedule,
	}, lg.Named("maintenance"))

	// Warm the map; a failure is retried on first use.
	if _, err := catalog.Regions(ctx); err != nil {
		lg.Warn("failed to preload map catalog", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(gctx)
	})
	g.Go(func() error {
		return maintenance.Start(gctx)
	})

	return g.Wait()
}
