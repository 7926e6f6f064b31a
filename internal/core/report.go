package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
	"github.com/DatKorso/price-updater/internal/excel"
)

const (
	// MissingReportFile отчет по позициям источника, не найденным в назначении
	MissingReportFile = "Reporte_Faltantes.xlsx"
	// MissingReportSheet лист отчета по ненайденным позициям
	MissingReportSheet = "Faltantes"
	// LinkReportFile отчет с предложенными связями
	LinkReportFile = "AYUDA_VINCULACION.xlsx"
	// LinkReportSheet лист отчета с предложенными связями
	LinkReportSheet = "Vinculacion"
	// MaxPreviewRows количество строк, показываемых оператору перед записью отчетов
	MaxPreviewRows = 50
)

var (
	missingReportHeaders  = []string{"SKU", "NOMBRE PRODUCTO", "PRECIO LISTA", "HOJA ORIGEN"}
	missingPreviewColumns = []string{"SKU", "NOMBRE", "PRECIO", "HOJA ORIGEN"}
	linkReportHeaders     = []string{"TITULO ML", "COINCIDENCIA", "SKU SUGERIDO", "SIMILITUD", "HOJA ORIGEN"}
)

// ReportOutcome результат формирования отчетов
type ReportOutcome struct {
	Files   []string
	Skipped bool // оператор отклонил предпросмотр, файлы не записаны
}

// ReportAssembler записывает отчеты после подтверждения предпросмотра
type ReportAssembler struct {
	progressNotifier
	logger *slog.Logger
}

// NewReportAssembler создает новый сборщик отчетов
func NewReportAssembler(logger *slog.Logger) *ReportAssembler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportAssembler{logger: logger}
}

// Assemble показывает предпросмотр и записывает отчеты в dir.
// Предпросматривается список ненайденных позиций, а если он пуст, список связей.
// Каждый файл записывается только для непустого списка. host == nil означает согласие.
func (a *ReportAssembler) Assemble(ctx context.Context, host Host, dir string, unmatched []UnmatchedItem, suggestions []FuzzySuggestion) (*ReportOutcome, error) {
	outcome := &ReportOutcome{Files: []string{}}
	if len(unmatched) == 0 && len(suggestions) == 0 {
		a.logger.Info("отчеты не требуются")
		return outcome, nil
	}

	a.notifyProgress(0, 3, "Предпросмотр отчетов")

	approved, err := a.confirm(ctx, host, previewRequest(unmatched, suggestions))
	if err != nil {
		return nil, err
	}
	if !approved {
		a.logger.Info("формирование отчетов отменено оператором")
		outcome.Skipped = true
		return outcome, nil
	}

	if len(unmatched) > 0 {
		path := filepath.Join(dir, MissingReportFile)
		a.notifyProgress(1, 3, "Запись отчета по ненайденным позициям")
		if err := writeMissingReport(path, unmatched); err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, path)
		a.logger.Info("отчет записан", "file", path, "rows", len(unmatched))
	}

	if len(suggestions) > 0 {
		path := filepath.Join(dir, LinkReportFile)
		a.notifyProgress(2, 3, "Запись отчета по связям")
		if err := writeLinkReport(path, suggestions); err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, path)
		a.logger.Info("отчет записан", "file", path, "rows", len(suggestions))
	}

	a.notifyProgress(3, 3, "Отчеты записаны")
	return outcome, nil
}

func (a *ReportAssembler) confirm(ctx context.Context, host Host, req PreviewRequest) (bool, error) {
	if host == nil {
		return true, nil
	}

	// Отмена на предпросмотре не откатывает уже сохраненную копию назначения
	approved, err := host.ConfirmPreview(ctx, req)
	if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка подтверждения отчетов: %w", err)
	}
	return approved, nil
}

// previewRequest строит предпросмотр: не более MaxPreviewRows строк и общее количество
func previewRequest(unmatched []UnmatchedItem, suggestions []FuzzySuggestion) PreviewRequest {
	if len(unmatched) > 0 {
		req := PreviewRequest{
			Title:     "Reporte de Faltantes",
			Columns:   missingPreviewColumns,
			TotalRows: len(unmatched),
		}
		for _, item := range unmatched[:min(len(unmatched), MaxPreviewRows)] {
			req.Rows = append(req.Rows, []string{item.SKU, item.Name, item.Price.String(), item.OriginSheet})
		}
		return req
	}

	req := PreviewRequest{
		Title:     "Ayuda de Vinculación",
		Columns:   linkReportHeaders,
		TotalRows: len(suggestions),
	}
	for _, s := range suggestions[:min(len(suggestions), MaxPreviewRows)] {
		req.Rows = append(req.Rows, []string{s.Title, s.MatchedName, s.SuggestedSKU, formatPercent(s.Percent), s.OriginSheet})
	}
	return req
}

func writeMissingReport(path string, items []UnmatchedItem) error {
	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = []interface{}{item.SKU, item.Name, item.Price.InexactFloat64(), item.OriginSheet}
	}
	opts := excel.TableOptions{ColumnFormats: map[int]string{2: excel.CurrencyFormat}}
	return writeReport(path, MissingReportSheet, missingReportHeaders, rows, opts)
}

func writeLinkReport(path string, suggestions []FuzzySuggestion) error {
	rows := make([][]interface{}, len(suggestions))
	for i, s := range suggestions {
		rows[i] = []interface{}{s.Title, s.MatchedName, s.SuggestedSKU, formatPercent(s.Percent), s.OriginSheet}
	}
	return writeReport(path, LinkReportSheet, linkReportHeaders, rows, excel.TableOptions{})
}

func writeReport(path, sheetName string, headers []string, rows [][]interface{}, opts excel.TableOptions) error {
	writer := excel.NewWriter()
	defer writer.Close()

	if err := writer.RenameDefaultSheet(sheetName); err != nil {
		return apperrors.NewReportError(path, err)
	}
	if err := writer.WriteTable(sheetName, headers, rows, opts); err != nil {
		return apperrors.NewReportError(path, err)
	}
	if err := excel.CheckNotLocked(path); err != nil {
		return err
	}
	if err := writer.Save(path); err != nil {
		return apperrors.NewReportError(path, err)
	}
	return nil
}

func formatPercent(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}
