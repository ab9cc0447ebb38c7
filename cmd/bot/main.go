package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/form"
	"technohunter_bot/internal/infra/config"
	"technohunter_bot/internal/infra/health"
	"technohunter_bot/internal/infra/logger"
	"technohunter_bot/internal/infra/memory"
	"technohunter_bot/internal/infra/metrics"
	"technohunter_bot/internal/infra/scheduler"
	"technohunter_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; fail before any connection is made.
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithField("environment", cfg.Environment).
		WithField("admins", len(cfg.AdminTelegramIDs)).
		Info("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := form.DefaultCatalog()
	applicationRepo := memory.NewApplicationRepository()
	sessions := memory.NewSessionStore(catalog)
	settings := app.NewAdminSettings(cfg.AdminTelegramIDs, true)

	pref := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID).WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	telegramClient := telegram.NewTelebotAdapter(bot)
	notificationService := app.NewNotificationService(settings, telegramClient, logger.Component("notifications"))
	intakeService := app.NewIntakeService(applicationRepo, notificationService, catalog, logger.Component("intake"))
	adminService := app.NewAdminService(applicationRepo, settings, cfg.AdminListLimit)

	telegram.RegisterHandlers(bot, &telegram.Deps{
		Ctx:      ctx,
		Catalog:  catalog,
		Sessions: sessions,
		Repo:     applicationRepo,
		Intake:   intakeService,
		Admin:    adminService,
		Client:   telegramClient,
		WebApp:   cfg.WebAppURL,
		Support:  cfg.SupportContact,
		Partners: cfg.PartnersURL,
		Logger:   logger.Component("telegram"),
	})
	mainLogger.Info("Telegram handlers registered")

	digestScheduler := scheduler.NewDigestScheduler(adminService, notificationService, logger.Component("scheduler"), cfg.CronSpecDailyDigest)
	if err := digestScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start scheduler")
	}

	healthServer := health.NewServer(cfg.Port, health.NewRouter(applicationRepo, metrics.Handler(), time.Now), logger.Component("health"))
	healthServer.Start()

	mainLogger.Info("Application setup complete. Bot is starting...")
	go bot.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	cancel()
	digestScheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Warn("Health server shutdown failed")
	}
	mainLogger.Info("Application shut down gracefully.")
}
