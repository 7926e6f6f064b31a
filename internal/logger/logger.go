package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName имя каталога приложения в домашней директории
const AppDirName = ".price-updater"

// LevelEnv переменная окружения с уровнем журнала (debug, info, warn, error)
const LevelEnv = "PRICE_UPDATER_LOG_LEVEL"

// Config конфигурация логгера
type Config struct {
	Level      slog.Level
	LogFile    string
	MaxSize    int64 // байты, после превышения файл ротируется при запуске
	MaxBackups int   // 0: старый журнал не сохраняется
	Console    bool
}

// DefaultConfig возвращает конфигурацию журнала программы name:
// файл ~/.price-updater/logs/<name>.log, уровень из LevelEnv.
func DefaultConfig(name string) *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	level, err := ParseLevel(os.Getenv(LevelEnv))
	if err != nil {
		level = slog.LevelInfo
	}

	return &Config{
		Level:      level,
		LogFile:    filepath.Join(homeDir, AppDirName, "logs", name+".log"),
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 5,
		Console:    true,
	}
}

// ParseLevel разбирает имя уровня журнала, пустая строка означает info
func ParseLevel(name string) (slog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// InitLogger открывает файл журнала и делает логгер логгером по умолчанию
func InitLogger(cfg *Config) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if info, err := os.Stat(cfg.LogFile); err == nil && info.Size() > cfg.MaxSize {
		if err := rotateLogFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var writer io.Writer = file
	if cfg.Console {
		writer = io.MultiWriter(file, os.Stdout)
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: true,
	}))
	slog.SetDefault(logger)

	return logger, nil
}

// Discard возвращает логгер без вывода: журнал отключен или файл недоступен
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// rotateLogFile сдвигает журналы: log -> log.1 -> ... -> log.MaxBackups
func rotateLogFile(cfg *Config) error {
	if cfg.MaxBackups <= 0 {
		return os.Remove(cfg.LogFile)
	}

	if err := removeIfExists(backupName(cfg.LogFile, cfg.MaxBackups)); err != nil {
		return err
	}
	for i := cfg.MaxBackups - 1; i > 0; i-- {
		err := os.Rename(backupName(cfg.LogFile, i), backupName(cfg.LogFile, i+1))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return os.Rename(cfg.LogFile, backupName(cfg.LogFile, 1))
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
