package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/DatKorso/price-updater/internal/assistant"
	"github.com/DatKorso/price-updater/internal/config"
	"github.com/DatKorso/price-updater/internal/gui"
	"github.com/DatKorso/price-updater/internal/logger"
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	logCfg := logger.DefaultConfig("price-updater")
	appLogger, err := logger.InitLogger(logCfg)
	if err != nil {
		log.Fatalf("Ошибка при инициализации логгера: %v", err)
	}

	appLogger.Info("Price Updater запущен",
		"version", gui.AppVersion,
		"log_file", logCfg.LogFile,
	)

	configManager, err := config.NewManager(appLogger)
	if err != nil {
		log.Fatalf("Ошибка при инициализации config manager: %v", err)
	}

	application := gui.NewApp(appLogger, configManager, newAssistant(appLogger, configManager))

	appLogger.Info("GUI инициализирован, запускаю приложение")
	application.Run()

	appLogger.Info("Price Updater завершен")
}

// newAssistant создает помощника, если задан ключ API. Иначе вкладка помощника скрыта.
func newAssistant(appLogger *slog.Logger, configManager *config.Manager) assistant.Service {
	apiKey := os.Getenv(assistant.APIKeyEnv)
	if apiKey == "" {
		appLogger.Info("ключ помощника не задан, помощник отключен")
		return nil
	}

	model := assistant.DefaultModel
	if settings, err := configManager.LoadSettings(); err == nil && settings.AssistantModel != "" {
		model = settings.AssistantModel
	}

	generator, err := assistant.NewGeminiGenerator(context.Background(), apiKey, model)
	if err != nil {
		appLogger.Warn("помощник недоступен", "error", err)
		return nil
	}

	appLogger.Info("помощник подключен", "model", generator.Model())
	return assistant.NewListingAssistant(generator, appLogger)
}
