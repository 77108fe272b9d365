package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"label-bot/config"
	telegram "label-bot/internal/api"
	"label-bot/internal/container"
	"label-bot/internal/infrastructure/backend"
	"label-bot/internal/infrastructure/registry"
	"label-bot/internal/infrastructure/storage"
	"label-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	profiles, err := registry.Load(cfg.ProfilesFile)
	if err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}

	// Создаём хранилище сессий
	sessionRepo := storage.NewMemorySessionRepository()

	// Собираем сервисы приложения
	appContainer := container.New(
		profiles,
		sessionRepo,
		backend.Factory(cfg.BackendURL),
		vision.NewLabelPreparer(cfg.LabelMaxSide),
		cfg.NoticeDuration,
	)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Bot is running, backend %s", cfg.BackendURL)
	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
