package core

import (
	"fmt"
	"log/slog"

	"github.com/DatKorso/price-updater/internal/excel"
)

// SheetPreview первые строки листа с найденной строкой заголовков
type SheetPreview struct {
	SheetName string
	HeaderRow int        // индекс строки заголовков (0-based)
	Headers   []string   // имена столбцов, пустые заменены на "Column N"
	Rows      [][]string // строки данных после заголовка, выровненные по Headers
}

// BuildSheetPreview строит предпросмотр по первым строкам листа
func BuildSheetPreview(sheetName string, rows [][]string) *SheetPreview {
	preview := &SheetPreview{
		SheetName: sheetName,
		Headers:   []string{},
		Rows:      [][]string{},
	}
	if len(rows) == 0 {
		return preview
	}

	preview.HeaderRow = LocateHeaderRow(rows)
	preview.Headers = HeaderNames(rows[preview.HeaderRow], 0)

	for _, row := range rows[preview.HeaderRow+1:] {
		aligned := make([]string, len(preview.Headers))
		copy(aligned, row)
		preview.Rows = append(preview.Rows, aligned)
	}
	return preview
}

// SheetAnalyzer открывает книгу и готовит предпросмотр листов для оператора
type SheetAnalyzer struct {
	reader *excel.Reader
	logger *slog.Logger
}

// NewSheetAnalyzer создает новый анализатор листов
func NewSheetAnalyzer(logger *slog.Logger) *SheetAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}

	return &SheetAnalyzer{logger: logger}
}

// AnalyzeFile открывает книгу. Ранее открытая книга закрывается.
func (a *SheetAnalyzer) AnalyzeFile(filePath string) error {
	a.Close()

	reader, err := excel.NewReader(filePath)
	if err != nil {
		return err
	}
	if err := reader.ValidateFile(); err != nil {
		reader.Close()
		return err
	}

	a.reader = reader
	a.logger.Info("книга открыта для анализа", "file", filePath, "sheets", len(reader.GetSheetNames()))
	return nil
}

// Close закрывает открытую книгу
func (a *SheetAnalyzer) Close() {
	if a.reader != nil {
		a.reader.Close()
		a.reader = nil
	}
}

// GetSheetNames возвращает список листов открытой книги
func (a *SheetAnalyzer) GetSheetNames() []string {
	if a.reader == nil {
		return nil
	}
	return a.reader.GetSheetNames()
}

// Preview возвращает предпросмотр первых limit строк листа
func (a *SheetAnalyzer) Preview(sheetName string, limit int) (*SheetPreview, error) {
	if a.reader == nil {
		return nil, fmt.Errorf("книга не открыта")
	}

	rows, err := a.reader.HeadRows(sheetName, limit)
	if err != nil {
		return nil, err
	}
	return BuildSheetPreview(sheetName, rows), nil
}

// DefaultSheet возвращает лист preferred, если он есть, иначе первый лист
func (a *SheetAnalyzer) DefaultSheet(preferred string) string {
	sheets := a.GetSheetNames()
	for _, name := range sheets {
		if name == preferred {
			return name
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}
