package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/excel"
)

// Этапы общей шкалы прогресса
const (
	progressConsolidated = 30
	progressUpdated      = 70
	progressSaved        = 75
)

// RunRequest параметры одного прогона сверки
type RunRequest struct {
	SourcePath   string
	SourceSheets []string
	// Profile необязательный профиль: сохраненные столбцы листов используются как предложение
	Profile *Profile

	DestinationPath        string
	DestinationSheet       string
	DestinationSKUColumn   string
	DestinationTitleColumn string

	// SavePath путь рабочей копии назначения, оригинал не изменяется
	SavePath string
}

// Validate проверяет параметры прогона
func (r RunRequest) Validate() error {
	switch {
	case r.SourcePath == "":
		return apperrors.NewConfigError("Не выбран файл источника", nil)
	case len(r.SourceSheets) == 0:
		return apperrors.NewConfigError("Выберите хотя бы один лист источника", nil)
	case r.DestinationPath == "":
		return apperrors.NewConfigError("Не выбран файл назначения", nil)
	case r.DestinationSheet == "":
		return apperrors.NewConfigError("Не выбран лист назначения", nil)
	case r.DestinationSKUColumn == "":
		return apperrors.NewConfigError("Не выбран столбец SKU назначения", nil)
	case r.SavePath == "":
		return apperrors.NewConfigError("Не указан путь сохранения результата", nil)
	case excel.SamePath(r.SavePath, r.DestinationPath):
		return apperrors.NewConfigError("Результат нельзя сохранить поверх исходного файла назначения", nil)
	case excel.SamePath(r.SavePath, r.SourcePath):
		return apperrors.NewConfigError("Результат нельзя сохранить поверх файла источника", nil)
	}
	return nil
}

// RunResult результат прогона сверки
type RunResult struct {
	RunID          string
	Stats          RunStatistics
	Unmatched      []UnmatchedItem
	Suggestions    []FuzzySuggestion
	ReportFiles    []string
	ReportsSkipped bool // назначение обновлено, отчеты не записаны
	SkippedSheets  []SkippedSheet
	Warnings       []string
	OutputPath     string
	Duration       time.Duration
}

// Summary итоговое сообщение для оператора
func (r *RunResult) Summary() string {
	summary := fmt.Sprintf("Изменено строк: %d\nУникальных SKU: %d\nДубликатов: %d\nЛистов: %d",
		r.Stats.TotalChanges, r.Stats.UniqueMatches, r.Stats.DuplicateMatches, r.Stats.SheetsProcessed)
	if r.ReportsSkipped {
		summary += "\n\nФайл обновлен, но дополнительные отчеты не сформированы."
	}
	return summary
}

// Reconciler выполняет полный прогон сверки цен
type Reconciler struct {
	progressNotifier
	host      Host
	logger    *slog.Logger
	threshold float64
}

// NewReconciler создает новый движок сверки
func NewReconciler(host Host, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		host:      host,
		logger:    logger,
		threshold: DefaultSimilarityThreshold,
	}
}

// SetSimilarityThreshold задает порог похожести для связывания
func (r *Reconciler) SetSimilarityThreshold(threshold float64) {
	if threshold > 0 && threshold <= 1 {
		r.threshold = threshold
	}
}

// Run выполняет этапы последовательно в вызывающей горутине.
// После копирования назначения отмена уже не откатывает запись.
func (r *Reconciler) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startTime := time.Now()
	result := &RunResult{
		RunID:      uuid.NewString(),
		OutputPath: req.SavePath,
	}
	logger := r.logger.With("run_id", result.RunID)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger.Info("начало сверки",
		"source", req.SourcePath,
		"sheets", len(req.SourceSheets),
		"destination", req.DestinationPath,
		"save_path", req.SavePath,
	)
	r.notifyProgress(0, ProgressScale, "Проверка файлов")

	for _, path := range []string{req.SourcePath, req.DestinationPath, req.SavePath} {
		if err := excel.CheckNotLocked(path); err != nil {
			logger.Warn("файл недоступен", "file", path, "error", err)
			return nil, err
		}
	}

	source, err := excel.NewReader(req.SourcePath)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	configs, err := r.collectColumnConfigs(ctx, logger, source, req, result)
	if err != nil {
		return nil, err
	}

	consolidator := NewConsolidator(logger)
	consolidator.SetProgressCallback(scaledProgress(r.currentCallback(), 0, progressConsolidated))
	consolidation, err := consolidator.Consolidate(source, configs)
	if err != nil {
		return nil, err
	}
	result.SkippedSheets = append(result.SkippedSheets, consolidation.SheetsSkipped...)
	result.Warnings = append(result.Warnings, consolidation.Warnings...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapping, err := r.resolveDestination(req)
	if err != nil {
		logger.Error("столбцы назначения не найдены", "error", err)
		return nil, err
	}

	update, err := r.updateCopy(logger, req, mapping, consolidation.Prices)
	if err != nil {
		return nil, err
	}
	result.Stats = update.Stats
	result.Stats.SheetsProcessed = len(consolidation.SheetsProcessed)
	r.notifyProgress(progressSaved, ProgressScale, "Файл сохранен")

	result.Unmatched = UnmatchedItems(consolidation.Prices, consolidation.Names, update.Matched)
	linker := NewFuzzyLinker(logger)
	linker.Threshold = r.threshold
	result.Suggestions = linker.Link(update.NoSKUTitles, consolidation.Names, consolidation.Prices)

	assembler := NewReportAssembler(logger)
	assembler.SetProgressCallback(scaledProgress(r.currentCallback(), progressSaved, ProgressScale))
	outcome, err := assembler.Assemble(ctx, r.host, filepath.Dir(req.SavePath), result.Unmatched, result.Suggestions)
	if err != nil {
		logger.Error("ошибка формирования отчетов", "error", err)
		return nil, err
	}
	result.ReportFiles = outcome.Files
	result.ReportsSkipped = outcome.Skipped

	result.Duration = time.Since(startTime)
	r.notifyProgress(ProgressScale, ProgressScale, "Готово")

	logger.Info("сверка завершена",
		"changes", result.Stats.TotalChanges,
		"unique", result.Stats.UniqueMatches,
		"duplicates", result.Stats.DuplicateMatches,
		"sheets", result.Stats.SheetsProcessed,
		"unmatched", len(result.Unmatched),
		"suggestions", len(result.Suggestions),
		"reports", len(result.ReportFiles),
		"reports_skipped", result.ReportsSkipped,
		"duration", result.Duration,
	)

	return result, nil
}

// collectColumnConfigs запрашивает у хоста столбцы каждого выбранного листа источника
func (r *Reconciler) collectColumnConfigs(ctx context.Context, logger *slog.Logger, source *excel.Reader, req RunRequest, result *RunResult) ([]SheetColumnConfig, error) {
	configs := make([]SheetColumnConfig, 0, len(req.SourceSheets))

	for _, sheetName := range req.SourceSheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := source.HeadRows(sheetName, PreviewRows)
		if err != nil {
			result.SkippedSheets = append(result.SkippedSheets, SkippedSheet{Sheet: sheetName, Reason: err.Error()})
			logger.Warn("лист пропущен", "sheet", sheetName, "error", err)
			continue
		}
		preview := BuildSheetPreview(sheetName, rows)

		suggested := SuggestSourceColumns(sheetName, preview.Headers)
		if req.Profile != nil {
			if saved := req.Profile.GetSheetConfig(sheetName); saved != nil {
				suggested = *saved
			}
		}

		cfg := suggested
		if r.host != nil {
			cfg, err = r.host.ConfirmColumnMapping(ctx, MappingRequest{
				SheetName: sheetName,
				Preview:   preview,
				Suggested: suggested,
			})
			if errors.Is(err, ErrCancelled) {
				result.SkippedSheets = append(result.SkippedSheets, SkippedSheet{Sheet: sheetName, Reason: "отменено оператором"})
				logger.Info("настройка листа отменена", "sheet", sheetName)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("ошибка выбора столбцов листа '%s': %w", sheetName, err)
			}
		}

		cfg.SheetName = sheetName
		if err := cfg.Validate(); err != nil {
			result.SkippedSheets = append(result.SkippedSheets, SkippedSheet{Sheet: sheetName, Reason: err.Error()})
			logger.Warn("лист пропущен", "sheet", sheetName, "error", err)
			continue
		}

		logger.Info("столбцы листа подтверждены",
			"sheet", sheetName,
			"sku", cfg.SKUColumn,
			"price", cfg.PriceColumn,
			"name", cfg.NameColumn,
		)
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		msg := fmt.Sprintf("Не настроен ни один лист источника %s", filepath.Base(source.GetFilePath()))
		return nil, apperrors.NewConfigError(msg, nil)
	}
	return configs, nil
}

// resolveDestination находит столбцы назначения в исходном файле до копирования
func (r *Reconciler) resolveDestination(req RunRequest) (ColumnMapping, error) {
	reader, err := excel.NewReader(req.DestinationPath)
	if err != nil {
		return ColumnMapping{}, err
	}
	defer reader.Close()

	rows, err := reader.HeadRows(req.DestinationSheet, HeaderScanRows)
	if err != nil {
		return ColumnMapping{}, err
	}
	return ResolveDestinationColumns(req.DestinationSheet, rows, req.DestinationSKUColumn, req.DestinationTitleColumn)
}

// updateCopy копирует назначение в SavePath и обновляет цены в копии
func (r *Reconciler) updateCopy(logger *slog.Logger, req RunRequest, mapping ColumnMapping, prices *PriceIndex) (*UpdateResult, error) {
	r.notifyProgress(progressConsolidated, ProgressScale, "Создание копии файла назначения")

	if err := excel.CopyFile(req.DestinationPath, req.SavePath); err != nil {
		return nil, err
	}

	wb, err := excel.OpenWorkbook(req.SavePath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	updater := NewDestinationUpdater(logger)
	updater.SetProgressCallback(scaledProgress(r.currentCallback(), progressConsolidated, progressUpdated))
	update, err := updater.Update(wb, req.DestinationSheet, mapping, prices)
	if err != nil {
		if apperrors.Code(err) != "" {
			return nil, err
		}
		return nil, apperrors.NewReconcileError("ошибка обновления файла назначения", err)
	}

	r.notifyProgress(progressUpdated, ProgressScale, "Сохранение файла")
	if err := wb.Save(); err != nil {
		return nil, err
	}

	logger.Info("файл назначения сохранен", "file", wb.GetFilePath())
	return update, nil
}
