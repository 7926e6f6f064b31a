package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DatKorso/price-updater/internal/assistant"
	"github.com/DatKorso/price-updater/internal/logger"
)

var (
	addr     string
	model    string
	certFile string
	keyFile  string
)

var rootCmd = &cobra.Command{
	Use:   "assistant-api",
	Short: "HTTP сервер помощника публикаций",
	Long: `Сервер принимает запросы надстройки Excel:
  POST /api/optimize    оптимизация заголовка и описания
  POST /api/smart-edit  редактирование строки по команде

Ключ API берется из переменной GEMINI_API_KEY или файла .env.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8000", "адрес HTTP сервера")
	rootCmd.Flags().StringVar(&model, "model", assistant.DefaultModel, "модель Gemini")
	rootCmd.Flags().StringVar(&certFile, "cert", "", "сертификат TLS")
	rootCmd.Flags().StringVar(&keyFile, "key", "", "ключ TLS")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logCfg := logger.DefaultConfig("assistant-api")
	appLogger, err := logger.InitLogger(logCfg)
	if err != nil {
		return fmt.Errorf("ошибка при инициализации логгера: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := assistant.NewGeminiGenerator(ctx, os.Getenv(assistant.APIKeyEnv), model)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := assistant.NewRouter(assistant.NewListingAssistant(generator, appLogger), appLogger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	useTLS := certFile != "" && keyFile != ""
	appLogger.Info("сервер помощника запущен", "addr", addr, "tls", useTLS, "model", generator.Model())

	if useTLS {
		err = srv.ListenAndServeTLS(certFile, keyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("сервер остановлен с ошибкой", "error", err)
		return err
	}

	appLogger.Info("сервер помощника остановлен")
	return nil
}
