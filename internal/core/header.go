package core

import "strings"

const (
	// PreviewRows количество строк листа, показываемых оператору при выборе столбцов
	PreviewRows = 15
	// HeaderScanRows количество первых строк, в которых ищется строка заголовков
	HeaderScanRows = 20
)

// headerKeywords слова, по которым строка считается заголовком
var headerKeywords = []string{"SKU", "CODIGO", "PRICE", "PRECIO"}

// LocateHeaderRow возвращает индекс (0-based) первой строки, похожей на заголовок.
// Если ни одна строка не подходит, возвращает 0.
func LocateHeaderRow(rows [][]string) int {
	for i, row := range rows {
		joined := joinNonEmpty(row)
		for _, keyword := range headerKeywords {
			if strings.Contains(joined, keyword) {
				return i
			}
		}
	}
	return 0
}

// joinNonEmpty склеивает непустые ячейки строки через пробел в верхнем регистре
func joinNonEmpty(row []string) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if cell == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(cell))
	}
	return strings.Join(parts, " ")
}

// headWindow возвращает не более limit первых строк
func headWindow(rows [][]string, limit int) [][]string {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
