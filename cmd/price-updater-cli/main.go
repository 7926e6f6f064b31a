package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DatKorso/price-updater/internal/config"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/logger"
)

var (
	verbose  bool
	noLog    bool
	logLevel string

	appLogger     *slog.Logger
	configManager *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "price-updater-cli",
	Short: "Перенос цен из прайс-листа в файл публикаций без GUI",
	Long: `price-updater-cli переносит цены поставщика в копию файла публикаций
маркетплейса и формирует отчеты Reporte_Faltantes.xlsx и AYUDA_VINCULACION.xlsx.

Столбцы листов берутся из профиля или определяются по заголовкам.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "писать журнал также в консоль")
	rootCmd.PersistentFlags().BoolVar(&noLog, "no-log", false, "не вести журнал")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень журнала: debug, info, warn, error (по умолчанию $"+logger.LevelEnv+")")
	rootCmd.AddCommand(runCmd, sheetsCmd, profilesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// setup инициализирует журнал и менеджер конфигураций
func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var err error
	appLogger, err = newLogger(cmd)
	if err != nil {
		return err
	}

	configManager, err = config.NewManager(appLogger)
	return err
}

// newLogger создает журнал price-updater-cli.log.
// Если файл журнала недоступен, работа продолжается без журнала.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	if noLog {
		return logger.Discard(), nil
	}

	logCfg := logger.DefaultConfig("price-updater-cli")
	logCfg.Console = verbose
	if logLevel != "" {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		logCfg.Level = level
	}

	appLog, err := logger.InitLogger(logCfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Журнал отключен: %v\n", err)
		return logger.Discard(), nil
	}
	return appLog, nil
}

// formatError добавляет к ошибке приложения понятное пользователю сообщение
func formatError(err error) string {
	code := apperrors.Code(err)
	if code == "" {
		return "Ошибка: " + err.Error()
	}
	return fmt.Sprintf("Ошибка %s: %s\n%s", code, apperrors.UserMessage(code), err.Error())
}
