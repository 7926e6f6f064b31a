package core

import (
	"fmt"
	"strings"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// DestinationPriceHeader имя столбца цены в книге назначения (точное совпадение)
const DestinationPriceHeader = "PRICE"

// ColumnMapping позиции столбцов листа, найденные один раз и используемые для всех строк.
// Индексы 0-based, -1 означает "не найден".
type ColumnMapping struct {
	HeaderRow int // индекс строки заголовков
	SKU       int
	Price     int
	Name      int // необязательный столбец названия (источник)
	Title     int // необязательный столбец заголовка публикации (назначение)
	StartRow  int // индекс первой строки данных
}

// HasName сообщает, найден ли столбец названия
func (m ColumnMapping) HasName() bool {
	return m.Name >= 0
}

// HasTitle сообщает, найден ли столбец заголовка публикации
func (m ColumnMapping) HasTitle() bool {
	return m.Title >= 0
}

// PlaceholderHeader имя для пустой ячейки заголовка (n 1-based)
func PlaceholderHeader(n int) string {
	return fmt.Sprintf("Column %d", n)
}

// HeaderNames возвращает имена столбцов строки заголовков.
// Пустые ячейки получают имя "Column N", короткая строка дополняется до width.
func HeaderNames(row []string, width int) []string {
	if width < len(row) {
		width = len(row)
	}

	names := make([]string, width)
	for i := 0; i < width; i++ {
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		if value == "" {
			value = PlaceholderHeader(i + 1)
		}
		names[i] = value
	}
	return names
}

// indexOf возвращает позицию первого столбца с именем name или -1
func indexOf(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// maxWidth возвращает длину самой длинной строки
func maxWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// ResolveSourceColumns ищет в первых HeaderScanRows строках листа источника
// первую строку, содержащую столбцы идентификатора и цены из cfg.
// Столбец названия ищется в той же строке и может отсутствовать.
func ResolveSourceColumns(rows [][]string, cfg SheetColumnConfig) (ColumnMapping, error) {
	window := headWindow(rows, HeaderScanRows)
	width := maxWidth(window)

	for r, row := range window {
		headers := HeaderNames(row, width)
		sku := indexOf(headers, cfg.SKUColumn)
		price := indexOf(headers, cfg.PriceColumn)
		if sku < 0 || price < 0 {
			continue
		}

		return ColumnMapping{
			HeaderRow: r,
			SKU:       sku,
			Price:     price,
			Name:      indexOf(headers, cfg.NameColumn),
			Title:     -1,
			StartRow:  r + 1,
		}, nil
	}

	missing := cfg.SKUColumn
	if missing == "" {
		missing = cfg.PriceColumn
	}
	return ColumnMapping{}, apperrors.NewColumnNotFoundError(cfg.SheetName, missing)
}

// ResolveDestinationColumns ищет в первых HeaderScanRows строках листа назначения
// строку со столбцом идентификатора skuColumn и столбцом PRICE.
// Столбец заголовка публикации titleColumn необязателен.
func ResolveDestinationColumns(sheetName string, rows [][]string, skuColumn, titleColumn string) (ColumnMapping, error) {
	window := headWindow(rows, HeaderScanRows)
	width := maxWidth(window)

	for r, row := range window {
		headers := HeaderNames(row, width)
		sku := indexOf(headers, skuColumn)
		price := indexOf(headers, DestinationPriceHeader)
		if sku < 0 || price < 0 {
			continue
		}

		return ColumnMapping{
			HeaderRow: r,
			SKU:       sku,
			Price:     price,
			Name:      -1,
			Title:     indexOf(headers, titleColumn),
			StartRow:  r + 1,
		}, nil
	}

	return ColumnMapping{}, apperrors.NewDestinationColumnsError(sheetName, skuColumn, DestinationPriceHeader)
}

// cellAt возвращает значение ячейки строки или "" если столбца нет
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
