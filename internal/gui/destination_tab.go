package gui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/native"
)

// DestinationTab вкладка выбора файла публикаций
type DestinationTab struct {
	app *App

	filePathLabel *widget.Label
	sheetSelect   *widget.Select
	skuSelect     *widget.Select
	titleSelect   *widget.Select
	outputEntry   *widget.Entry
	previewBox    *fyne.Container

	analyzer *core.SheetAnalyzer
	filePath string
}

// NewDestinationTab создает вкладку назначения
func NewDestinationTab(app *App) *DestinationTab {
	return &DestinationTab{
		app:      app,
		analyzer: core.NewSheetAnalyzer(app.logger),
	}
}

// Build создает UI вкладки
func (t *DestinationTab) Build() fyne.CanvasObject {
	t.filePathLabel = widget.NewLabel("Файл не выбран")
	t.filePathLabel.Wrapping = fyne.TextWrapWord

	selectBtn := widget.NewButton("Выбрать файл публикаций...", func() {
		t.onSelectFile()
	})

	t.sheetSelect = widget.NewSelect(nil, func(sheet string) {
		t.onSheetChanged(sheet)
	})
	t.skuSelect = widget.NewSelect(nil, nil)
	t.titleSelect = widget.NewSelect(nil, nil)

	t.outputEntry = widget.NewEntry()
	t.outputEntry.SetText(t.app.GetProfile().Destination.OutputName)

	form := widget.NewForm(
		widget.NewFormItem("Лист", t.sheetSelect),
		widget.NewFormItem("Столбец SKU", t.skuSelect),
		widget.NewFormItem("Столбец заголовка", t.titleSelect),
		widget.NewFormItem("Имя результата", t.outputEntry),
	)

	t.previewBox = container.NewStack()

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Шаг 2: Выберите файл публикаций маркетплейса"),
			widget.NewLabel("Исходный файл не изменяется: цены записываются в копию."),
			selectBtn,
			t.filePathLabel,
			widget.NewSeparator(),
			form,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		t.previewBox,
	)
}

// onSelectFile открывает нативный диалог выбора книги
func (t *DestinationTab) onSelectFile() {
	go func() {
		path, err := native.SelectWorkbook("Выберите файл публикаций", t.app.settings.LastDestinationDir)
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

// LoadFile открывает книгу назначения и выбирает лист по умолчанию
func (t *DestinationTab) LoadFile(path string) {
	if filepath.Ext(path) != ".xlsx" {
		t.app.ShowError(apperrors.NewInvalidFormatError(path))
		return
	}
	if path == t.app.sourceTab.FilePath() {
		t.app.ShowError(apperrors.NewConfigError("Файл публикаций совпадает с прайс-листом", nil))
		return
	}

	if err := t.analyzer.AnalyzeFile(path); err != nil {
		t.app.ShowError(err)
		return
	}

	t.filePath = path
	t.filePathLabel.SetText(path)
	t.sheetSelect.Options = t.analyzer.GetSheetNames()
	t.sheetSelect.Refresh()
	t.sheetSelect.SetSelected(t.analyzer.DefaultSheet(t.app.GetProfile().Destination.SheetName))

	t.app.settings.LastDestinationDir = filepath.Dir(path)
	t.app.saveSettings()

	t.app.logger.Info("файл публикаций выбран", "path", path)
}

// onSheetChanged обновляет список столбцов и предлагает SKU и заголовок
func (t *DestinationTab) onSheetChanged(sheet string) {
	t.previewBox.RemoveAll()
	if sheet == "" {
		return
	}

	preview, err := t.analyzer.Preview(sheet, core.HeaderScanRows)
	if err != nil {
		t.app.ShowError(err)
		return
	}

	suggestedSKU, suggestedTitle := core.SuggestDestinationColumns(preview.Headers)
	dest := t.app.GetProfile().Destination
	if dest.SKUColumn != "" && slices.Contains(preview.Headers, dest.SKUColumn) {
		suggestedSKU = dest.SKUColumn
	}
	if dest.TitleColumn != "" && slices.Contains(preview.Headers, dest.TitleColumn) {
		suggestedTitle = dest.TitleColumn
	}

	t.skuSelect.Options = preview.Headers
	t.skuSelect.ClearSelected()
	if suggestedSKU != "" {
		t.skuSelect.SetSelected(suggestedSKU)
	}
	t.skuSelect.Refresh()

	t.titleSelect.Options = append([]string{noColumn}, preview.Headers...)
	if suggestedTitle != "" {
		t.titleSelect.SetSelected(suggestedTitle)
	} else {
		t.titleSelect.SetSelected(noColumn)
	}
	t.titleSelect.Refresh()

	t.previewBox.Add(newPreviewTable(preview.Headers, preview.Rows))
}

// FilePath возвращает путь к файлу публикаций
func (t *DestinationTab) FilePath() string {
	return t.filePath
}

// SheetName возвращает выбранный лист
func (t *DestinationTab) SheetName() string {
	return t.sheetSelect.Selected
}

// SKUColumn возвращает выбранный столбец SKU
func (t *DestinationTab) SKUColumn() string {
	return t.skuSelect.Selected
}

// TitleColumn возвращает выбранный столбец заголовка или пустую строку
func (t *DestinationTab) TitleColumn() string {
	return selectedColumn(t.titleSelect)
}

// OutputName возвращает имя файла результата
func (t *DestinationTab) OutputName() string {
	name := strings.TrimSpace(t.outputEntry.Text)
	if name == "" {
		name = core.DefaultOutputName
	}
	if filepath.Ext(name) != ".xlsx" {
		name += ".xlsx"
	}
	return name
}

// ApplyToProfile записывает настройки назначения в профиль
func (t *DestinationTab) ApplyToProfile(profile *core.Profile) {
	if sheet := t.SheetName(); sheet != "" {
		profile.Destination.SheetName = sheet
	}
	if sku := t.SKUColumn(); sku != "" {
		profile.Destination.SKUColumn = sku
	}
	profile.Destination.TitleColumn = t.TitleColumn()
	profile.Destination.OutputName = t.OutputName()
}

// LoadProfile применяет настройки назначения из профиля
func (t *DestinationTab) LoadProfile(profile *core.Profile) {
	t.outputEntry.SetText(profile.Destination.OutputName)
	if t.filePath == "" {
		return
	}
	if _, err := os.Stat(t.filePath); err != nil {
		return
	}
	t.sheetSelect.SetSelected(t.analyzer.DefaultSheet(profile.Destination.SheetName))
	t.onSheetChanged(t.sheetSelect.Selected)
}
