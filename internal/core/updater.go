package core

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// progressEveryRows частота уведомлений о прогрессе при обновлении назначения
const progressEveryRows = 50

// DestinationWorkbook изменяемая книга назначения
type DestinationWorkbook interface {
	GetRows(sheetName string) ([][]string, error)
	// SetCellFloat записывает число в ячейку (row, col 1-based)
	SetCellFloat(sheetName string, row, col int, value float64) error
	// HighlightRow подсвечивает ячейки строки с 1 по lastCol
	HighlightRow(sheetName string, row, lastCol int) error
}

// RunStatistics статистика прогона
type RunStatistics struct {
	TotalChanges     int // измененные строки назначения
	UniqueMatches    int // различные идентификаторы среди измененных строк
	DuplicateMatches int // TotalChanges - UniqueMatches
	SheetsProcessed  int // листы источника, давшие данные
}

// UpdateResult результат прохода по листу назначения
type UpdateResult struct {
	Stats       RunStatistics
	Matched     map[string]struct{}
	NoSKUTitles []string // заголовки строк без идентификатора, кандидаты для связывания
	RowsScanned int
}

// IsMatched сообщает, была ли обновлена хотя бы одна строка с идентификатором sku
func (r *UpdateResult) IsMatched(sku string) bool {
	_, ok := r.Matched[sku]
	return ok
}

// DestinationUpdater обновляет цены в книге назначения за один проход
type DestinationUpdater struct {
	progressNotifier
	logger *slog.Logger
}

// NewDestinationUpdater создает новый обработчик назначения
func NewDestinationUpdater(logger *slog.Logger) *DestinationUpdater {
	if logger == nil {
		logger = slog.Default()
	}

	return &DestinationUpdater{logger: logger}
}

// Update проходит строки листа начиная с mapping.StartRow ровно один раз.
// Строки читаются одним снимком, запись идет по адресам ячеек.
// Строка с идентификатором, отсутствующим в индексе, не изменяется.
func (u *DestinationUpdater) Update(wb DestinationWorkbook, sheetName string, mapping ColumnMapping, prices *PriceIndex) (*UpdateResult, error) {
	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{
		Matched:     make(map[string]struct{}),
		NoSKUTitles: []string{},
	}

	lastCol := maxWidth(rows)
	if mapping.Price+1 > lastCol {
		lastCol = mapping.Price + 1
	}

	total := len(rows) - mapping.StartRow
	for r := mapping.StartRow; r < len(rows); r++ {
		done := r - mapping.StartRow
		if done%progressEveryRows == 0 {
			u.notifyProgress(done, total, fmt.Sprintf("Обработка строки %d из %d", done, total))
		}

		row := rows[r]
		result.RowsScanned++

		sku, ok := NormalizeSKU(cellAt(row, mapping.SKU))
		if !ok {
			if mapping.HasTitle() {
				if title := normalizeName(cellAt(row, mapping.Title)); title != "" {
					result.NoSKUTitles = append(result.NoSKUTitles, title)
				}
			}
			continue
		}

		entry, found := prices.Lookup(sku)
		if !found {
			continue
		}

		excelRow := r + 1
		if err := wb.SetCellFloat(sheetName, excelRow, mapping.Price+1, entry.Price.InexactFloat64()); err != nil {
			return nil, fmt.Errorf("не удалось записать цену в строку %d: %w", excelRow, err)
		}
		if err := wb.HighlightRow(sheetName, excelRow, lastCol); err != nil {
			return nil, fmt.Errorf("не удалось подсветить строку %d: %w", excelRow, err)
		}

		result.Stats.TotalChanges++
		result.Matched[sku] = struct{}{}
	}

	result.Stats.UniqueMatches = len(result.Matched)
	result.Stats.DuplicateMatches = result.Stats.TotalChanges - result.Stats.UniqueMatches

	u.notifyProgress(total, total, "Лист назначения обработан")

	u.logger.Info("лист назначения обработан",
		"sheet", sheetName,
		"rows", result.RowsScanned,
		"changes", result.Stats.TotalChanges,
		"unique", result.Stats.UniqueMatches,
		"duplicates", result.Stats.DuplicateMatches,
		"without_sku", len(result.NoSKUTitles),
	)

	return result, nil
}

// UnmatchedItem позиция источника, не найденная в назначении
type UnmatchedItem struct {
	SKU         string
	Name        string
	Price       decimal.Decimal
	OriginSheet string
}

// UnmatchedItems возвращает идентификаторы индекса цен, не попавшие в matched,
// в порядке индекса
func UnmatchedItems(prices *PriceIndex, names *NameIndex, matched map[string]struct{}) []UnmatchedItem {
	items := []UnmatchedItem{}
	for _, sku := range prices.Keys() {
		if _, ok := matched[sku]; ok {
			continue
		}
		entry, _ := prices.Lookup(sku)
		items = append(items, UnmatchedItem{
			SKU:         sku,
			Name:        names.NameOf(sku),
			Price:       entry.Price,
			OriginSheet: entry.Sheet,
		})
	}
	return items
}
