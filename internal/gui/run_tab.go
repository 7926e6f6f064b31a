package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/native"
)

// RunTab вкладка запуска обновления цен
type RunTab struct {
	app *App

	// UI элементы
	startBtn      *widget.Button
	cancelBtn     *widget.Button
	autoApprove   *widget.Check
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	resultPreview *widget.Label

	// Состояние
	result     *core.RunResult
	inProgress bool
	cancel     context.CancelFunc
}

// NewRunTab создает вкладку запуска
func NewRunTab(app *App) *RunTab {
	return &RunTab{app: app}
}

// Build создает UI вкладки
func (t *RunTab) Build() fyne.CanvasObject {
	t.startBtn = widget.NewButton("Обновить цены...", func() {
		t.onStart()
	})
	t.startBtn.Importance = widget.HighImportance

	t.cancelBtn = widget.NewButton("Отменить", func() {
		t.Cancel()
	})
	t.cancelBtn.Disable()

	t.autoApprove = widget.NewCheck("Сохранять отчеты без предпросмотра", func(on bool) {
		t.app.settings.AutoApproveReports = on
		t.app.saveSettings()
	})
	t.autoApprove.SetChecked(t.app.settings.AutoApproveReports)

	t.progressBar = widget.NewProgressBar()
	t.progressBar.Min = 0
	t.progressBar.Max = 1

	t.statusLabel = widget.NewLabel("Готов к обновлению")
	t.statusLabel.Wrapping = fyne.TextWrapWord

	t.resultPreview = widget.NewLabel("")
	t.resultPreview.Wrapping = fyne.TextWrapWord

	instructionLabel := widget.NewLabel(
		"Обновление цен:\n\n" +
			"1. Выберите прайс-лист и отметьте листы\n" +
			"2. Выберите файл публикаций и столбцы SKU и заголовка\n" +
			"3. Нажмите 'Обновить цены...' и укажите, куда сохранить копию\n" +
			"4. Подтвердите столбцы каждого листа и отчеты",
	)
	instructionLabel.Wrapping = fyne.TextWrapWord

	return container.NewBorder(
		container.NewVBox(
			instructionLabel,
			widget.NewSeparator(),
			container.NewHBox(t.startBtn, t.cancelBtn),
			t.autoApprove,
			widget.NewSeparator(),
			widget.NewLabel("Прогресс:"),
			t.progressBar,
			t.statusLabel,
			widget.NewSeparator(),
			widget.NewLabel("Результат:"),
		),
		nil, nil, nil,
		container.NewScroll(t.resultPreview),
	)
}

// InProgress сообщает, выполняется ли прогон
func (t *RunTab) InProgress() bool {
	return t.inProgress
}

// Cancel прерывает ожидание ответа оператора в текущем прогоне
func (t *RunTab) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// onStart проверяет готовность и запрашивает путь сохранения
func (t *RunTab) onStart() {
	if t.inProgress {
		t.app.ShowInfo("Обновление в процессе", "Дождитесь завершения текущего обновления")
		return
	}

	req, err := t.buildRequest()
	if err != nil {
		t.app.ShowError(err)
		return
	}

	suggested := filepath.Join(filepath.Dir(req.DestinationPath), t.app.destinationTab.OutputName())
	go func() {
		savePath, err := native.SelectSavePath("Сохранить обновленный файл как", suggested)
		if native.IsCancelled(err) {
			return
		}
		fyne.Do(func() {
			if err != nil {
				t.app.ShowError(err)
				return
			}
			req.SavePath = savePath
			if err := req.Validate(); err != nil {
				t.app.ShowError(err)
				return
			}
			t.startRun(req)
		})
	}()
}

// buildRequest собирает параметры прогона из вкладок
func (t *RunTab) buildRequest() (core.RunRequest, error) {
	source := t.app.sourceTab
	dest := t.app.destinationTab

	switch {
	case source.FilePath() == "":
		return core.RunRequest{}, apperrors.NewConfigError("Не выбран прайс-лист", nil)
	case len(source.SelectedSheets()) == 0:
		return core.RunRequest{}, apperrors.NewConfigError("Отметьте хотя бы один лист прайс-листа", nil)
	case dest.FilePath() == "":
		return core.RunRequest{}, apperrors.NewConfigError("Не выбран файл публикаций", nil)
	case dest.SKUColumn() == "":
		return core.RunRequest{}, apperrors.NewConfigError("Не выбран столбец SKU файла публикаций", nil)
	}

	profile := t.app.GetProfile()
	source.ApplyToProfile(profile)
	dest.ApplyToProfile(profile)

	return core.RunRequest{
		SourcePath:             source.FilePath(),
		SourceSheets:           source.SelectedSheets(),
		Profile:                profile.Clone(),
		DestinationPath:        dest.FilePath(),
		DestinationSheet:       dest.SheetName(),
		DestinationSKUColumn:   dest.SKUColumn(),
		DestinationTitleColumn: dest.TitleColumn(),
	}, nil
}

// startRun запускает сверку в рабочей горутине
func (t *RunTab) startRun(req core.RunRequest) {
	t.progressBar.SetValue(0)
	t.statusLabel.SetText("Начинаю обновление...")
	t.resultPreview.SetText("")
	t.startBtn.Disable()
	t.cancelBtn.Enable()
	t.inProgress = true
	t.result = nil

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	progressChan := make(chan core.ProgressUpdate, 10)
	doneChan := make(chan error, 1)

	host := &guiHost{app: t.app, autoApprove: t.app.settings.AutoApproveReports}
	reconciler := core.NewReconciler(host, t.app.logger)
	reconciler.SetSimilarityThreshold(t.app.settings.SimilarityThreshold)
	reconciler.SetProgressCallback(func(current, total int, message string) {
		progressChan <- core.ProgressUpdate{Current: current, Total: total, Message: message}
	})

	var result *core.RunResult
	go func() {
		var err error
		result, err = reconciler.Run(ctx, req)
		close(progressChan)
		doneChan <- err
	}()

	go func() {
		for update := range progressChan {
			currentUpdate := update
			fyne.Do(func() {
				t.progressBar.SetValue(currentUpdate.Percent() / 100)
				t.statusLabel.SetText(currentUpdate.Message)
			})
		}

		err := <-doneChan
		cancel()

		fyne.Do(func() {
			t.inProgress = false
			t.cancel = nil
			t.startBtn.Enable()
			t.cancelBtn.Disable()

			if err != nil {
				t.progressBar.SetValue(0)
				if errors.Is(err, context.Canceled) {
					t.statusLabel.SetText("Обновление отменено")
					return
				}
				t.statusLabel.SetText("Ошибка при обновлении")
				t.app.ShowError(err)
				return
			}

			t.result = result
			t.statusLabel.SetText("Обновление завершено")
			t.progressBar.SetValue(1)
			t.showResult()
			t.app.ShowInfo("Обновление завершено", result.Summary())
		})
	}()
}

// showResult показывает итоги прогона
func (t *RunTab) showResult() {
	if t.result == nil {
		return
	}
	r := t.result

	var b strings.Builder
	b.WriteString(r.Summary())
	fmt.Fprintf(&b, "\n\nФайл: %s\nВремя выполнения: %s\n", r.OutputPath, r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "SKU без публикации: %d\nПредложений связывания: %d\n", len(r.Unmatched), len(r.Suggestions))

	if len(r.ReportFiles) > 0 {
		b.WriteString("\nОтчеты:\n")
		for _, f := range r.ReportFiles {
			fmt.Fprintf(&b, "  • %s\n", f)
		}
	}
	if len(r.SkippedSheets) > 0 {
		b.WriteString("\nПропущенные листы:\n")
		for _, s := range r.SkippedSheets {
			fmt.Fprintf(&b, "  • %s: %s\n", s.Sheet, s.Reason)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\nПредупреждения:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  • %s\n", w)
		}
	}

	t.resultPreview.SetText(b.String())
}
