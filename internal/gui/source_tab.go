package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/native"
)

// SourceTab вкладка выбора прайс-листа и его листов
type SourceTab struct {
	app *App

	// UI элементы
	filePathLabel    *widget.Label
	selectFileBtn    *widget.Button
	profileNameEntry *widget.Entry
	sheetList        *widget.List
	sheetNameLabel   *widget.Label
	mappingLabel     *widget.Label
	configureBtn     *widget.Button
	previewBox       *fyne.Container

	// Данные
	analyzer      *core.SheetAnalyzer
	filePath      string
	sheets        []string
	enabled       map[string]bool
	selectedSheet int

	// Флаг для предотвращения ложных срабатываний чекбоксов
	updatingUI bool
}

// NewSourceTab создает вкладку источника
func NewSourceTab(app *App) *SourceTab {
	return &SourceTab{
		app:           app,
		analyzer:      core.NewSheetAnalyzer(app.logger),
		enabled:       map[string]bool{},
		selectedSheet: -1,
	}
}

// Build создает UI вкладки
func (t *SourceTab) Build() fyne.CanvasObject {
	t.filePathLabel = widget.NewLabel("Файл не выбран")
	t.filePathLabel.Wrapping = fyne.TextWrapWord

	t.selectFileBtn = widget.NewButton("Выбрать прайс-лист...", func() {
		t.onSelectFile()
	})

	t.profileNameEntry = widget.NewEntry()
	t.profileNameEntry.SetPlaceHolder("Имя профиля")
	t.profileNameEntry.SetText(t.app.GetProfile().ProfileName)

	t.sheetList = widget.NewList(
		func() int {
			return len(t.sheets)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewCheck("", nil),
				widget.NewLabel("Sheet Name"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= widget.ListItemID(len(t.sheets)) {
				return
			}
			name := t.sheets[id]
			box := obj.(*fyne.Container)
			check := box.Objects[0].(*widget.Check)
			label := box.Objects[1].(*widget.Label)

			t.updatingUI = true
			check.OnChanged = nil
			check.Checked = t.enabled[name]
			check.Refresh()
			t.updatingUI = false

			check.OnChanged = func(on bool) {
				if t.updatingUI {
					return
				}
				t.enabled[name] = on
				t.app.logger.Debug("лист источника переключен", "sheet", name, "enabled", on)
			}

			label.SetText(name)
		},
	)
	t.sheetList.OnSelected = func(id widget.ListItemID) {
		t.selectedSheet = int(id)
		t.updateConfigPanel()
	}

	t.sheetNameLabel = widget.NewLabel("Не выбран")
	t.sheetNameLabel.TextStyle = fyne.TextStyle{Bold: true}
	t.mappingLabel = widget.NewLabel("Выберите лист слева")
	t.mappingLabel.Wrapping = fyne.TextWrapWord

	t.configureBtn = widget.NewButton("Настроить столбцы...", func() {
		t.onConfigureSheet()
	})
	t.configureBtn.Importance = widget.HighImportance
	t.configureBtn.Disable()

	t.previewBox = container.NewStack()

	configPanel := container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Лист:"),
			t.sheetNameLabel,
			t.mappingLabel,
			t.configureBtn,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		t.previewBox,
	)

	split := container.NewHSplit(
		container.NewPadded(container.NewBorder(
			widget.NewLabel("Листы прайс-листа:"), nil, nil, nil,
			t.sheetList,
		)),
		container.NewPadded(configPanel),
	)
	split.SetOffset(0.3)

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Шаг 1: Выберите файл с ценами поставщика и отметьте листы"),
			t.selectFileBtn,
			t.filePathLabel,
			widget.NewSeparator(),
			widget.NewLabel("Имя профиля:"),
			t.profileNameEntry,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		split,
	)
}

// onSelectFile открывает нативный диалог выбора книги
func (t *SourceTab) onSelectFile() {
	go func() {
		path, err := native.SelectWorkbook("Выберите прайс-лист", t.app.settings.LastSourceDir)
		if native.IsCancelled(err) {
			return
		}
		fyne.Do(func() {
			if err != nil {
				t.app.ShowError(err)
				return
			}
			t.LoadFile(path)
		})
	}()
}

// LoadFile открывает книгу источника и заполняет список листов
func (t *SourceTab) LoadFile(path string) {
	if filepath.Ext(path) != ".xlsx" {
		t.app.ShowError(apperrors.NewInvalidFormatError(path))
		return
	}

	if err := t.analyzer.AnalyzeFile(path); err != nil {
		t.app.ShowError(err)
		return
	}

	t.filePath = path
	t.filePathLabel.SetText(path)
	t.sheets = t.analyzer.GetSheetNames()

	profile := t.app.GetProfile()
	t.enabled = map[string]bool{}
	for _, name := range t.sheets {
		t.enabled[name] = profile.GetSheetConfig(name) != nil
	}

	t.selectedSheet = -1
	t.sheetList.UnselectAll()
	t.updatingUI = true
	t.sheetList.Refresh()
	t.updatingUI = false
	t.updateConfigPanel()

	t.app.settings.LastSourceDir = filepath.Dir(path)
	t.app.saveSettings()

	t.app.logger.Info("прайс-лист выбран", "path", path, "sheets_count", len(t.sheets))
}

// updateConfigPanel обновляет панель выбранного листа
func (t *SourceTab) updateConfigPanel() {
	t.previewBox.RemoveAll()

	if t.selectedSheet < 0 || t.selectedSheet >= len(t.sheets) {
		t.sheetNameLabel.SetText("Не выбран")
		t.mappingLabel.SetText("Выберите лист слева")
		t.configureBtn.Disable()
		return
	}

	name := t.sheets[t.selectedSheet]
	t.sheetNameLabel.SetText(name)
	t.configureBtn.Enable()
	t.mappingLabel.SetText(formatMapping(t.app.GetProfile().GetSheetConfig(name)))

	preview, err := t.analyzer.Preview(name, core.PreviewRows)
	if err != nil {
		t.mappingLabel.SetText(err.Error())
		return
	}
	t.previewBox.Add(newPreviewTable(preview.Headers, preview.Rows))
}

// onConfigureSheet показывает выбор столбцов для выбранного листа
func (t *SourceTab) onConfigureSheet() {
	if t.selectedSheet < 0 || t.selectedSheet >= len(t.sheets) {
		return
	}
	name := t.sheets[t.selectedSheet]

	preview, err := t.analyzer.Preview(name, core.PreviewRows)
	if err != nil {
		t.app.ShowError(err)
		return
	}

	suggested := core.SuggestSourceColumns(name, preview.Headers)
	if saved := t.app.GetProfile().GetSheetConfig(name); saved != nil {
		suggested = *saved
	}

	showMappingDialog(t.app.window, core.MappingRequest{
		SheetName: name,
		Preview:   preview,
		Suggested: suggested,
	}, func(cfg core.SheetColumnConfig, ok bool) {
		if !ok {
			return
		}
		if err := cfg.Validate(); err != nil {
			t.app.ShowError(err)
			return
		}
		t.app.GetProfile().SetSheet(cfg)
		t.enabled[name] = true
		t.updatingUI = true
		t.sheetList.Refresh()
		t.updatingUI = false
		t.mappingLabel.SetText(formatMapping(&cfg))
		t.app.logger.Info("столбцы листа настроены", "sheet", name, "sku", cfg.SKUColumn, "price", cfg.PriceColumn)
	})
}

// SelectedSheets возвращает отмеченные листы в порядке книги
func (t *SourceTab) SelectedSheets() []string {
	selected := []string{}
	for _, name := range t.sheets {
		if t.enabled[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

// FilePath возвращает путь к прайс-листу
func (t *SourceTab) FilePath() string {
	return t.filePath
}

// ApplyToProfile записывает состояние вкладки в профиль
func (t *SourceTab) ApplyToProfile(profile *core.Profile) {
	if name := strings.TrimSpace(t.profileNameEntry.Text); name != "" {
		profile.ProfileName = name
	}
	if t.filePath != "" {
		profile.SourceFile = t.filePath
	}
}

// LoadProfile загружает профиль в UI
func (t *SourceTab) LoadProfile(profile *core.Profile) {
	t.profileNameEntry.SetText(profile.ProfileName)

	if profile.SourceFile == "" {
		return
	}
	if _, err := os.Stat(profile.SourceFile); err != nil {
		t.app.logger.Warn("файл источника из профиля недоступен", "path", profile.SourceFile, "error", err)
		return
	}
	t.LoadFile(profile.SourceFile)
}

func formatMapping(cfg *core.SheetColumnConfig) string {
	if cfg == nil {
		return "Столбцы не настроены, будут предложены при запуске"
	}
	name := cfg.NameColumn
	if name == "" {
		name = noColumn
	}
	return fmt.Sprintf("SKU: %s\nЦена: %s\nНазвание: %s", cfg.SKUColumn, cfg.PriceColumn, name)
}
