package excel

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

const (
	// HeaderFillColor цвет заливки строки заголовков отчета
	HeaderFillColor = "3498DB"
	// HeaderFontColor цвет шрифта строки заголовков отчета
	HeaderFontColor = "FFFFFF"
	// MaxColumnWidth максимальная ширина столбца при автоподборе
	MaxColumnWidth = 60
	// CurrencyFormat формат денежных ячеек
	CurrencyFormat = `"$"#,##0.00`
)

// Writer предоставляет методы для записи Excel файлов
type Writer struct {
	file *excelize.File
}

// TableOptions дополнительные настройки таблицы отчета
type TableOptions struct {
	// ColumnFormats формат чисел по индексу столбца (0-based)
	ColumnFormats map[int]string
}

// NewWriter создает новый Writer с пустой книгой
func NewWriter() *Writer {
	return &Writer{
		file: excelize.NewFile(),
	}
}

// Close закрывает файл
func (w *Writer) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// CreateSheet создает новый лист с указанным именем
func (w *Writer) CreateSheet(sheetName string) error {
	index, err := w.file.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", sheetName, err)
	}

	if index == 0 {
		w.file.SetActiveSheet(index)
	}

	return nil
}

// RenameDefaultSheet переименовывает первый лист новой книги
func (w *Writer) RenameDefaultSheet(sheetName string) error {
	sheets := w.file.GetSheetList()
	if len(sheets) == 0 {
		return w.CreateSheet(sheetName)
	}
	if sheets[0] == sheetName {
		return nil
	}
	if err := w.file.SetSheetName(sheets[0], sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet '%s': %w", sheets[0], err)
	}
	return nil
}

// WriteHeaderRow записывает строку заголовков
func (w *Writer) WriteHeaderRow(sheetName string, rowNum int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return w.WriteRow(sheetName, rowNum, values)
}

// WriteRow записывает одну строку данных, сохраняя типы значений
func (w *Writer) WriteRow(sheetName string, rowNum int, data []interface{}) error {
	for colIdx, value := range data {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to get cell name: %w", err)
		}

		if err := w.file.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write value to cell %s: %w", cell, err)
		}
	}

	return nil
}

// WriteRows записывает множество строк данных
func (w *Writer) WriteRows(sheetName string, startRow int, rows [][]interface{}) error {
	for i, row := range rows {
		if err := w.WriteRow(sheetName, startRow+i, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable записывает таблицу отчета: оформленные заголовки, границы, автоширина
func (w *Writer) WriteTable(sheetName string, headers []string, rows [][]interface{}, opts TableOptions) error {
	if !w.SheetExists(sheetName) {
		if err := w.CreateSheet(sheetName); err != nil {
			return err
		}
	}

	if err := w.WriteHeaderRow(sheetName, 1, headers); err != nil {
		return err
	}
	if err := w.WriteRows(sheetName, 2, rows); err != nil {
		return err
	}

	return w.styleTable(sheetName, headers, rows, opts)
}

// styleTable оформляет заголовки, границы ячеек данных и ширину столбцов
func (w *Writer) styleTable(sheetName string, headers []string, rows [][]interface{}, opts TableOptions) error {
	if len(headers) == 0 {
		return nil
	}

	headerStyle, err := w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: HeaderFontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{HeaderFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to get cell name: %w", err)
	}
	if err := w.file.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	dataStyle, err := w.file.NewStyle(&excelize.Style{Border: thinBorder()})
	if err != nil {
		return fmt.Errorf("failed to create data style: %w", err)
	}

	for col := range headers {
		styleID := dataStyle
		if format, ok := opts.ColumnFormats[col]; ok {
			numFmt := format
			styleID, err = w.file.NewStyle(&excelize.Style{Border: thinBorder(), CustomNumFmt: &numFmt})
			if err != nil {
				return fmt.Errorf("failed to create number format style: %w", err)
			}
		}

		if len(rows) > 0 {
			top, _ := excelize.CoordinatesToCellName(col+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(col+1, len(rows)+1)
			if err := w.file.SetCellStyle(sheetName, top, bottom, styleID); err != nil {
				return fmt.Errorf("failed to set data style: %w", err)
			}
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to get column name: %w", err)
		}
		if err := w.SetColumnWidth(sheetName, name, name, columnWidth(headers[col], rows, col)); err != nil {
			return err
		}
	}

	return nil
}

// columnWidth вычисляет ширину столбца по самому длинному значению
func columnWidth(header string, rows [][]interface{}, col int) float64 {
	longest := utf8.RuneCountInString(header)
	for _, row := range rows {
		if col >= len(row) || row[col] == nil {
			continue
		}
		if n := utf8.RuneCountInString(fmt.Sprint(row[col])); n > longest {
			longest = n
		}
	}

	width := longest + 4
	if width > MaxColumnWidth {
		width = MaxColumnWidth
	}
	return float64(width)
}

// thinBorder тонкая рамка со всех сторон
func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// SetColumnWidth устанавливает ширину столбца
func (w *Writer) SetColumnWidth(sheetName, startCol, endCol string, width float64) error {
	if err := w.file.SetColWidth(sheetName, startCol, endCol, width); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

// Save сохраняет файл по указанному пути
func (w *Writer) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return apperrors.NewSaveError(path, err)
	}
	return nil
}

// GetSheetNames возвращает список всех листов
func (w *Writer) GetSheetNames() []string {
	return w.file.GetSheetList()
}

// SheetExists проверяет существование листа
func (w *Writer) SheetExists(sheetName string) bool {
	for _, name := range w.GetSheetNames() {
		if name == sheetName {
			return true
		}
	}
	return false
}
