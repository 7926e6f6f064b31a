package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// HighlightColor цвет заливки измененных строк
const HighlightColor = "FFFF00"

// Workbook открытая на запись книга назначения.
// Запись выполняется по адресам ячеек, формат остальных ячеек сохраняется.
type Workbook struct {
	file *excelize.File
	path string

	// исходный стиль ячейки -> стиль с заливкой
	highlightStyles map[int]int
}

// OpenWorkbook открывает существующую книгу для изменения
func OpenWorkbook(path string) (*Workbook, error) {
	if err := checkWorkbookPath(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFileReadError(path, err)
	}

	return &Workbook{
		file:            f,
		path:            path,
		highlightStyles: make(map[int]int),
	}, nil
}

// Close закрывает книгу без сохранения
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// GetRows возвращает снимок всех строк листа
func (w *Workbook) GetRows(sheetName string) ([][]string, error) {
	if idx, err := w.file.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, apperrors.NewSheetNotFoundError(sheetName, w.path)
	}

	rows, err := w.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet '%s': %w", sheetName, err)
	}
	return rows, nil
}

// SetCellFloat записывает числовое значение в ячейку (row, col 1-based)
func (w *Workbook) SetCellFloat(sheetName string, row, col int, value float64) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to get cell name: %w", err)
	}

	if err := w.file.SetCellFloat(sheetName, cell, value, -1, 64); err != nil {
		return fmt.Errorf("failed to write value to cell %s: %w", cell, err)
	}
	return nil
}

// HighlightRow заливает ячейки строки с 1 по lastCol, сохраняя шрифт, границы и формат чисел
func (w *Workbook) HighlightRow(sheetName string, row, lastCol int) error {
	for col := 1; col <= lastCol; col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("failed to get cell name: %w", err)
		}

		baseStyle, err := w.file.GetCellStyle(sheetName, cell)
		if err != nil {
			return fmt.Errorf("failed to get style of cell %s: %w", cell, err)
		}

		styleID, err := w.highlightStyle(baseStyle)
		if err != nil {
			return err
		}

		if err := w.file.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			return fmt.Errorf("failed to set style of cell %s: %w", cell, err)
		}
	}
	return nil
}

// highlightStyle возвращает копию стиля baseStyle с желтой заливкой
func (w *Workbook) highlightStyle(baseStyle int) (int, error) {
	if id, ok := w.highlightStyles[baseStyle]; ok {
		return id, nil
	}

	style, err := w.file.GetStyle(baseStyle)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	style.Fill = excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create highlight style: %w", err)
	}

	w.highlightStyles[baseStyle] = id
	return id, nil
}

// Save сохраняет книгу по пути, из которого она открыта
func (w *Workbook) Save() error {
	if err := w.file.Save(); err != nil {
		return apperrors.NewSaveError(w.path, err)
	}
	return nil
}

// GetFilePath возвращает путь к книге
func (w *Workbook) GetFilePath() string {
	return w.path
}
