package gui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/assistant"
)

const assistantTimeout = 90 * time.Second

// AssistantTab вкладка оптимизации заголовка и описания публикации
type AssistantTab struct {
	app *App

	titleEntry       *widget.Entry
	descriptionEntry *widget.Entry
	categoryEntry    *widget.Entry
	optimizeBtn      *widget.Button
	statusLabel      *widget.Label

	newTitleEntry       *widget.Entry
	newDescriptionEntry *widget.Entry
	suggestionsLabel    *widget.Label
}

// NewAssistantTab создает вкладку помощника
func NewAssistantTab(app *App) *AssistantTab {
	return &AssistantTab{app: app}
}

// Build создает UI вкладки
func (t *AssistantTab) Build() fyne.CanvasObject {
	t.titleEntry = widget.NewEntry()
	t.titleEntry.SetPlaceHolder("Текущий заголовок")
	t.descriptionEntry = widget.NewMultiLineEntry()
	t.descriptionEntry.SetPlaceHolder("Текущее описание")
	t.descriptionEntry.SetMinRowsVisible(4)
	t.categoryEntry = widget.NewEntry()
	t.categoryEntry.SetPlaceHolder(assistant.DefaultCategory)

	t.optimizeBtn = widget.NewButton("Оптимизировать", func() {
		t.onOptimize()
	})
	t.optimizeBtn.Importance = widget.HighImportance

	t.statusLabel = widget.NewLabel("")

	t.newTitleEntry = widget.NewEntry()
	t.newDescriptionEntry = widget.NewMultiLineEntry()
	t.newDescriptionEntry.Wrapping = fyne.TextWrapWord
	t.newDescriptionEntry.SetMinRowsVisible(6)
	t.suggestionsLabel = widget.NewLabel("")
	t.suggestionsLabel.Wrapping = fyne.TextWrapWord

	copyBtn := widget.NewButton("Копировать заголовок", func() {
		t.app.fyneApp.Clipboard().SetContent(t.newTitleEntry.Text)
	})

	input := widget.NewForm(
		widget.NewFormItem("Заголовок", t.titleEntry),
		widget.NewFormItem("Описание", t.descriptionEntry),
		widget.NewFormItem("Категория", t.categoryEntry),
	)
	output := widget.NewForm(
		widget.NewFormItem("Новый заголовок", t.newTitleEntry),
		widget.NewFormItem("Новое описание", t.newDescriptionEntry),
	)

	return container.NewVScroll(container.NewVBox(
		widget.NewLabel("Оптимизация публикации с помощью ИИ"),
		input,
		container.NewHBox(t.optimizeBtn, t.statusLabel),
		widget.NewSeparator(),
		output,
		copyBtn,
		widget.NewLabel("Дополнительные рекомендации:"),
		t.suggestionsLabel,
	))
}

// onOptimize отправляет запрос помощнику в фоне
func (t *AssistantTab) onOptimize() {
	req := assistant.ListingRequest{
		Title:       t.titleEntry.Text,
		Description: t.descriptionEntry.Text,
		Category:    t.categoryEntry.Text,
	}

	t.optimizeBtn.Disable()
	t.statusLabel.SetText("Запрос к модели...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		listing, err := t.app.assistant.OptimizeListing(ctx, req)

		fyne.Do(func() {
			t.optimizeBtn.Enable()
			if err != nil {
				t.statusLabel.SetText("")
				t.app.ShowError(err)
				return
			}
			t.statusLabel.SetText("Готово")
			t.newTitleEntry.SetText(listing.Title)
			t.newDescriptionEntry.SetText(listing.Description)
			t.suggestionsLabel.SetText(listing.Suggestions)
		})
	}()
}
