package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// Reader предоставляет методы для чтения Excel файлов (только чтение)
type Reader struct {
	file *excelize.File
	path string
}

// NewReader создает новый Reader для указанного файла
func NewReader(path string) (*Reader, error) {
	if err := checkWorkbookPath(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFileReadError(path, err)
	}

	return &Reader{
		file: f,
		path: path,
	}, nil
}

// checkWorkbookPath проверяет существование и расширение файла
func checkWorkbookPath(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperrors.NewFileNotFoundError(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return apperrors.NewInvalidFormatError(path)
	}
	return nil
}

// Close закрывает файл и освобождает ресурсы
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// GetSheetNames возвращает список всех листов в файле
func (r *Reader) GetSheetNames() []string {
	return r.file.GetSheetList()
}

// SheetExists проверяет существование листа
func (r *Reader) SheetExists(sheetName string) bool {
	for _, name := range r.GetSheetNames() {
		if name == sheetName {
			return true
		}
	}
	return false
}

// GetRows возвращает все строки листа с неформатированными значениями ячеек
func (r *Reader) GetRows(sheetName string) ([][]string, error) {
	if !r.SheetExists(sheetName) {
		return nil, apperrors.NewSheetNotFoundError(sheetName, r.path)
	}

	rows, err := r.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet '%s': %w", sheetName, err)
	}

	return rows, nil
}

// HeadRows возвращает не более limit первых строк листа, не читая остальные
func (r *Reader) HeadRows(sheetName string, limit int) ([][]string, error) {
	if !r.SheetExists(sheetName) {
		return nil, apperrors.NewSheetNotFoundError(sheetName, r.path)
	}

	iter, err := r.file.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate sheet '%s': %w", sheetName, err)
	}
	defer iter.Close()

	rows := make([][]string, 0, limit)
	for len(rows) < limit && iter.Next() {
		row, err := iter.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d from sheet '%s': %w", len(rows)+1, sheetName, err)
		}
		rows = append(rows, row)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet '%s': %w", sheetName, err)
	}

	return rows, nil
}

// ValidateFile проверяет базовую валидность файла
func (r *Reader) ValidateFile() error {
	sheets := r.GetSheetNames()
	if len(sheets) == 0 {
		return apperrors.NewEmptyFileError(r.path)
	}
	return nil
}

// GetFilePath возвращает путь к открытому файлу
func (r *Reader) GetFilePath() string {
	return r.path
}
