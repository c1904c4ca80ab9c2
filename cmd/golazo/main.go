package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golazobot/golazo/internal/api/espn"
	"github.com/golazobot/golazo/internal/bot"
	"github.com/golazobot/golazo/internal/config"
	"github.com/golazobot/golazo/internal/logos"
	"github.com/golazobot/golazo/internal/models"
	"github.com/golazobot/golazo/internal/poller"
	"github.com/golazobot/golazo/internal/repository/memory"
	"github.com/golazobot/golazo/internal/scheduler"
	"github.com/golazobot/golazo/internal/service"
	"github.com/golazobot/golazo/internal/store"
	"github.com/golazobot/golazo/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archive, err := store.Connect(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer archive.Close()

	logoCache := logos.NewCache()
	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient, logoCache)

	repo := memory.NewRepository()
	gameService := service.NewGameService(repo, archive)

	scorePoller := poller.New(espnAPI, cfg.ESPNAPI.Leagues, cfg.ESPNAPI.PollInterval, gameService.TrackedMatches)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, gameService, scorePoller)
	if err != nil {
		return err
	}

	scorePoller.OnGoal(func(matchID string, side models.Side, newTotal int) {
		announcement, err := gameService.HandleGoal(matchID, side, newTotal)
		if err != nil {
			slog.Error("Error handling goal", "match", matchID, "error", err)
			return
		}
		if announcement != "" {
			telegramBot.SendMessage(announcement)
		}
	})
	defer func() {
		if err := scorePoller.Stop(); err != nil {
			slog.Error("Error stopping poller", "error", err)
		}
	}()

	if cfg.Recap.Cron != "" {
		recap, err := scheduler.NewScheduler(cfg.Recap.Cron, gameService, telegramBot.SendMessage)
		if err != nil {
			return err
		}
		recap.Start()
		defer recap.Stop()
	}

	webServer := web.NewServer(cfg.Web.Addr, scorePoller, gameService)
	go func() {
		if err := webServer.Run(); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}

	return nil
}
