package gui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/assistant"
	"github.com/DatKorso/price-updater/internal/config"
	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/native"
)

// AppVersion версия приложения
const AppVersion = "1.0.0"

// App главная структура приложения
type App struct {
	fyneApp       fyne.App
	window        fyne.Window
	logger        *slog.Logger
	configManager *config.Manager
	settings      *config.Settings
	assistant     assistant.Service

	// Вкладки
	tabs           *container.AppTabs
	sourceTab      *SourceTab
	destinationTab *DestinationTab
	runTab         *RunTab
	assistantTab   *AssistantTab

	currentProfile *core.Profile
}

// NewApp создает новое приложение. assistantService может быть nil.
func NewApp(logger *slog.Logger, cfgManager *config.Manager, assistantService assistant.Service) *App {
	application := &App{
		fyneApp:        app.NewWithID("com.github.price-updater"),
		logger:         logger,
		configManager:  cfgManager,
		assistant:      assistantService,
		currentProfile: core.NewProfile("Новый профиль"),
	}

	settings, err := cfgManager.LoadSettings()
	if err != nil {
		logger.Warn("не удалось загрузить настройки, используются значения по умолчанию", "error", err)
		settings = config.DefaultSettings()
	}
	application.settings = settings

	return application
}

// Run запускает приложение
func (a *App) Run() {
	a.window = a.fyneApp.NewWindow("Price Updater - Обновление цен публикаций")
	a.window.Resize(fyne.NewSize(1000, 720))

	a.sourceTab = NewSourceTab(a)
	a.destinationTab = NewDestinationTab(a)
	a.runTab = NewRunTab(a)

	a.tabs = container.NewAppTabs(
		container.NewTabItem("1. Источник цен", a.sourceTab.Build()),
		container.NewTabItem("2. Файл публикаций", a.destinationTab.Build()),
		container.NewTabItem("3. Обновление", a.runTab.Build()),
	)
	if a.assistant != nil {
		a.assistantTab = NewAssistantTab(a)
		a.tabs.Append(container.NewTabItem("Помощник", a.assistantTab.Build()))
	}
	a.tabs.SelectIndex(0)

	a.window.SetMainMenu(a.createMainMenu())
	a.window.SetContent(a.tabs)

	a.window.SetOnDropped(func(_ fyne.Position, items []fyne.URI) {
		a.onDropped(items)
	})

	a.window.SetCloseIntercept(func() {
		a.onClose()
	})

	a.logger.Info("окно приложения создано")
	a.window.ShowAndRun()
}

// onDropped передает перетащенную книгу текущей вкладке
func (a *App) onDropped(items []fyne.URI) {
	for _, item := range items {
		path := item.Path()
		if filepath.Ext(path) != ".xlsx" {
			continue
		}
		switch a.tabs.SelectedIndex() {
		case 0:
			a.sourceTab.LoadFile(path)
		case 1:
			a.destinationTab.LoadFile(path)
		}
		return
	}
}

// createMainMenu создает главное меню приложения
func (a *App) createMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("Файл",
		fyne.NewMenuItem("Открыть профиль...", func() {
			a.onLoadProfile()
		}),
		fyne.NewMenuItem("Сохранить профиль", func() {
			a.onSaveProfile()
		}),
		fyne.NewMenuItem("Экспорт профиля...", func() {
			a.onExportProfile()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Выход", func() {
			a.onClose()
		}),
	)

	helpMenu := fyne.NewMenu("Помощь",
		fyne.NewMenuItem("О программе", func() {
			a.showAboutDialog()
		}),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// ShowError показывает диалог с ошибкой пользователю
func (a *App) ShowError(err error) {
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if msg := apperrors.UserMessage(appErr.Code); msg != "" {
			message = fmt.Sprintf("%s\n\n%s", msg, appErr.Message)
		}
		a.logger.Error("ошибка приложения",
			"code", appErr.Code,
			"message", appErr.Message,
			"context", appErr.Context,
			"error", appErr.Err,
		)
	} else {
		a.logger.Error("неизвестная ошибка", "error", err)
	}

	dialog.ShowError(errors.New(message), a.window)
}

// ShowInfo показывает информационное сообщение
func (a *App) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, a.window)
}

// ShowConfirm показывает диалог подтверждения
func (a *App) ShowConfirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, a.window)
}

// onLoadProfile показывает список сохраненных профилей
func (a *App) onLoadProfile() {
	profiles, err := a.configManager.ListProfiles()
	if err != nil {
		a.ShowError(err)
		return
	}
	if len(profiles) == 0 {
		a.ShowInfo("Профили", "Сохраненных профилей нет")
		return
	}

	options := make([]string, 0, len(profiles))
	byLabel := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if p.IsCorrupt {
			continue
		}
		label := fmt.Sprintf("%s (листов: %d)", p.Name, p.SheetsCount)
		options = append(options, label)
		byLabel[label] = p.Filename
	}

	selectWidget := widget.NewSelect(options, nil)
	dialog.ShowCustomConfirm("Открыть профиль", "Открыть", "Отмена", selectWidget, func(ok bool) {
		if !ok || selectWidget.Selected == "" {
			return
		}
		filename := byLabel[selectWidget.Selected]
		profile, err := a.configManager.LoadProfile(filename)
		if err != nil {
			a.ShowError(err)
			return
		}

		a.currentProfile = profile
		a.settings.LastProfile = filename
		a.saveSettings()

		a.sourceTab.LoadProfile(profile)
		a.destinationTab.LoadProfile(profile)
		a.ShowInfo("Профиль загружен", "Профиль '"+profile.ProfileName+"' успешно загружен")
	}, a.window)
}

// onSaveProfile сохраняет текущий профиль под его именем
func (a *App) onSaveProfile() {
	profile := a.currentProfile
	a.sourceTab.ApplyToProfile(profile)
	a.destinationTab.ApplyToProfile(profile)

	filename := profileFilename(profile.ProfileName)
	if err := a.configManager.SaveProfile(profile, filename); err != nil {
		a.ShowError(err)
		return
	}

	a.settings.LastProfile = filename
	a.saveSettings()
	a.ShowInfo("Профиль сохранен", "Профиль '"+profile.ProfileName+"' успешно сохранен")
}

// onExportProfile копирует сохраненный текущий профиль в выбранную директорию
func (a *App) onExportProfile() {
	filename := profileFilename(a.currentProfile.ProfileName)
	if !a.configManager.ProfileExists(filename) {
		a.ShowInfo("Экспорт профиля", "Сначала сохраните профиль")
		return
	}

	go func() {
		dir, err := native.SelectDirectory("Папка для экспорта профиля")
		if native.IsCancelled(err) {
			return
		}
		fyne.Do(func() {
			if err != nil {
				a.ShowError(err)
				return
			}
			path, err := a.configManager.ExportProfile(filename, dir)
			if err != nil {
				a.ShowError(err)
				return
			}
			a.ShowInfo("Экспорт профиля", "Профиль сохранен в "+path)
		})
	}()
}

// showAboutDialog показывает диалог "О программе"
func (a *App) showAboutDialog() {
	about := widget.NewLabel(
		"Price Updater v" + AppVersion + "\n\n" +
			"Переносит цены из прайс-листа поставщика\n" +
			"в файл публикаций маркетплейса.",
	)
	about.Wrapping = fyne.TextWrapWord
	about.Alignment = fyne.TextAlignCenter

	dialog.ShowCustom("О программе", "Закрыть", about, a.window)
}

// onClose обработчик закрытия приложения
func (a *App) onClose() {
	if a.runTab != nil && a.runTab.InProgress() {
		a.ShowConfirm("Выход", "Обновление еще выполняется. Выйти?", func(ok bool) {
			if ok {
				a.runTab.Cancel()
				a.window.Close()
			}
		})
		return
	}
	a.logger.Info("приложение закрывается")
	a.window.Close()
}

// saveSettings сохраняет настройки, ошибка только логируется
func (a *App) saveSettings() {
	if err := a.configManager.SaveSettings(a.settings); err != nil {
		a.logger.Warn("не удалось сохранить настройки", "error", err)
	}
}

// GetProfile возвращает текущий профиль
func (a *App) GetProfile() *core.Profile {
	return a.currentProfile
}

func profileFilename(name string) string {
	filename := filepath.Base(name)
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return "profile"
	}
	return filename
}
