package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/logger"
)

const settingsFile = "settings.json"

// Settings общие настройки приложения
type Settings struct {
	LastSourceDir       string  `json:"last_source_dir,omitempty"`
	LastDestinationDir  string  `json:"last_destination_dir,omitempty"`
	LastProfile         string  `json:"last_profile,omitempty"`
	AssistantModel      string  `json:"assistant_model"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	AutoApproveReports  bool    `json:"auto_approve_reports"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() *Settings {
	return &Settings{
		AssistantModel:      "gemini-2.5-flash",
		SimilarityThreshold: core.DefaultSimilarityThreshold,
	}
}

// Manager управляет профилями конфигурации и настройками
type Manager struct {
	configDir   string
	profilesDir string
	logger      *slog.Logger
}

// NewManager создает менеджер конфигураций в домашней директории пользователя
func NewManager(log *slog.Logger) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, apperrors.NewConfigError("не удалось получить домашнюю директорию", err)
	}

	return NewManagerWithDir(filepath.Join(homeDir, logger.AppDirName), log)
}

// NewManagerWithDir создает менеджер конфигураций в директории приложения appDir
func NewManagerWithDir(appDir string, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.Default()
	}

	configDir := filepath.Join(appDir, "configs")
	profilesDir := filepath.Join(configDir, "profiles")

	for _, dir := range []string{appDir, configDir, profilesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("не удалось создать директорию %s", dir), err)
		}
	}

	log.Info("менеджер конфигураций инициализирован",
		"config_dir", configDir,
		"profiles_dir", profilesDir,
	)

	return &Manager{
		configDir:   configDir,
		profilesDir: profilesDir,
		logger:      log,
	}, nil
}

// profilePath возвращает путь к файлу профиля
func (m *Manager) profilePath(filename string) string {
	return filepath.Join(m.profilesDir, strings.TrimSuffix(filename, ".json")+".json")
}

// SaveProfile сохраняет профиль в JSON файл
func (m *Manager) SaveProfile(profile *core.Profile, filename string) error {
	if profile == nil {
		return apperrors.NewConfigError("профиль не может быть nil", nil)
	}

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("профиль невалиден: %w", err)
	}

	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	filePath := m.profilePath(filename)
	if err := writeJSON(filePath, profile); err != nil {
		return err
	}

	m.logger.Info("профиль сохранен",
		"profile", profile.ProfileName,
		"file", filePath,
		"sheets_count", len(profile.Sheets),
	)

	return nil
}

// LoadProfile загружает профиль из JSON файла
func (m *Manager) LoadProfile(filename string) (*core.Profile, error) {
	filePath := m.profilePath(filename)

	profile, err := readProfile(filePath)
	if err != nil {
		return nil, err
	}

	m.logger.Info("профиль загружен",
		"profile", profile.ProfileName,
		"file", filePath,
		"sheets_count", len(profile.Sheets),
	)

	return profile, nil
}

// ListProfiles возвращает список всех доступных профилей
func (m *Manager) ListProfiles() ([]ProfileInfo, error) {
	entries, err := os.ReadDir(m.profilesDir)
	if err != nil {
		return nil, apperrors.NewConfigError("не удалось прочитать директорию профилей", err)
	}

	profiles := []ProfileInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			m.logger.Warn("не удалось получить информацию о файле",
				"file", entry.Name(),
				"error", err,
			)
			continue
		}

		filename := strings.TrimSuffix(entry.Name(), ".json")
		profile, err := readProfile(m.profilePath(filename))
		if err != nil {
			m.logger.Warn("не удалось загрузить профиль",
				"file", entry.Name(),
				"error", err,
			)
			profiles = append(profiles, ProfileInfo{
				Filename:  filename,
				Name:      filename,
				ModTime:   info.ModTime(),
				Size:      info.Size(),
				IsCorrupt: true,
			})
			continue
		}

		profiles = append(profiles, ProfileInfo{
			Filename:    filename,
			Name:        profile.ProfileName,
			SourceFile:  profile.SourceFile,
			SheetsCount: len(profile.Sheets),
			CreatedAt:   profile.CreatedAt,
			UpdatedAt:   profile.UpdatedAt,
			ModTime:     info.ModTime(),
			Size:        info.Size(),
		})
	}

	m.logger.Info("получен список профилей", "count", len(profiles))

	return profiles, nil
}

// DeleteProfile удаляет профиль
func (m *Manager) DeleteProfile(filename string) error {
	filePath := m.profilePath(filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return apperrors.NewConfigError(fmt.Sprintf("файл профиля не найден: %s", filename), err)
	}

	if err := os.Remove(filePath); err != nil {
		return apperrors.NewConfigError("не удалось удалить файл профиля", err)
	}

	m.logger.Info("профиль удален", "file", filename)

	return nil
}

// ProfileExists проверяет существование профиля
func (m *Manager) ProfileExists(filename string) bool {
	_, err := os.Stat(m.profilePath(filename))
	return err == nil
}

// ExportProfile экспортирует профиль в указанную директорию
func (m *Manager) ExportProfile(filename, destDir string) (string, error) {
	profile, err := readProfile(m.profilePath(filename))
	if err != nil {
		return "", err
	}

	destFile := filepath.Join(destDir, strings.TrimSuffix(filename, ".json")+".json")
	if err := writeJSON(destFile, profile); err != nil {
		return "", err
	}

	m.logger.Info("профиль экспортирован",
		"profile", profile.ProfileName,
		"destination", destFile,
	)

	return destFile, nil
}

// ImportProfile импортирует профиль из указанного пути
func (m *Manager) ImportProfile(srcPath string) (*core.Profile, error) {
	profile, err := readProfile(srcPath)
	if err != nil {
		return nil, err
	}

	filename := strings.TrimSuffix(filepath.Base(srcPath), ".json")
	if err := m.SaveProfile(profile, filename); err != nil {
		return nil, fmt.Errorf("не удалось сохранить импортированный профиль: %w", err)
	}

	m.logger.Info("профиль импортирован",
		"source", srcPath,
		"profile", profile.ProfileName,
	)

	return profile, nil
}

// LoadSettings загружает настройки. Отсутствующий файл дает настройки по умолчанию.
func (m *Manager) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(filepath.Join(m.configDir, settingsFile))
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, apperrors.NewConfigError("не удалось прочитать настройки", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, apperrors.NewConfigError("не удалось разобрать настройки", err)
	}
	if settings.SimilarityThreshold <= 0 || settings.SimilarityThreshold > 1 {
		settings.SimilarityThreshold = core.DefaultSimilarityThreshold
	}

	return settings, nil
}

// SaveSettings сохраняет настройки
func (m *Manager) SaveSettings(settings *Settings) error {
	if settings == nil {
		return apperrors.NewConfigError("настройки не могут быть nil", nil)
	}

	if err := writeJSON(filepath.Join(m.configDir, settingsFile), settings); err != nil {
		return err
	}

	m.logger.Debug("настройки сохранены")
	return nil
}

// GetProfilesDir возвращает путь к директории профилей
func (m *Manager) GetProfilesDir() string {
	return m.profilesDir
}

// GetConfigDir возвращает путь к директории конфигурации
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// ProfileInfo информация о профиле
type ProfileInfo struct {
	Filename    string    // Имя файла (без расширения)
	Name        string    // Имя профиля
	SourceFile  string    // Файл источника
	SheetsCount int       // Количество листов
	CreatedAt   time.Time // Дата создания
	UpdatedAt   time.Time // Дата обновления
	ModTime     time.Time // Дата модификации файла
	Size        int64     // Размер файла в байтах
	IsCorrupt   bool      // Файл поврежден
}

// readProfile читает и валидирует профиль
func readProfile(path string) (*core.Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.NewConfigError(fmt.Sprintf("файл профиля не найден: %s", filepath.Base(path)), err)
	}
	if err != nil {
		return nil, apperrors.NewConfigError("не удалось прочитать файл профиля", err)
	}

	var profile core.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apperrors.NewConfigError("не удалось десериализовать профиль", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("профиль невалиден: %w", err)
	}

	return &profile, nil
}

// writeJSON сериализует значение с отступами и записывает в файл
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewConfigError("не удалось сериализовать данные", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("не удалось записать файл %s", filepath.Base(path)), err)
	}
	return nil
}
