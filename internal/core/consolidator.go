package core

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

// SourceWorkbook книга источника, доступная только для чтения
type SourceWorkbook interface {
	GetSheetNames() []string
	GetRows(sheetName string) ([][]string, error)
}

// SkippedSheet лист источника, не давший данных, и причина пропуска
type SkippedSheet struct {
	Sheet  string
	Reason string
}

// Consolidation результат объединения листов источника
type Consolidation struct {
	Prices          *PriceIndex
	Names           *NameIndex
	SheetsProcessed []string
	SheetsSkipped   []SkippedSheet
	RowsRead        int // строки с непустым идентификатором
	PricesDropped   int // строки, цена которых не распознана
	Warnings        []string
}

// Consolidator объединяет цены и названия из нескольких листов источника
type Consolidator struct {
	progressNotifier
	logger *slog.Logger
}

// NewConsolidator создает новый консолидатор
func NewConsolidator(logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Consolidator{logger: logger}
}

// Consolidate читает листы в порядке sheets. Лист, на котором не найдены
// столбцы идентификатора и цены, пропускается. При совпадении идентификаторов
// побеждает последняя прочитанная строка.
func (c *Consolidator) Consolidate(wb SourceWorkbook, sheets []SheetColumnConfig) (*Consolidation, error) {
	if len(sheets) == 0 {
		return nil, apperrors.NewConfigError("нет листов источника для обработки", nil)
	}

	result := &Consolidation{
		Prices: newPriceIndex(),
		Names:  newNameIndex(),
	}

	available := make(map[string]bool)
	for _, name := range wb.GetSheetNames() {
		available[name] = true
	}

	for i, cfg := range sheets {
		c.notifyProgress(i, len(sheets), fmt.Sprintf("Чтение листа: %s", cfg.SheetName))

		if !available[cfg.SheetName] {
			c.skip(result, cfg.SheetName, fmt.Sprintf("лист '%s' не найден в книге источника", cfg.SheetName))
			continue
		}

		rows, err := wb.GetRows(cfg.SheetName)
		if err != nil {
			c.skip(result, cfg.SheetName, fmt.Sprintf("не удалось прочитать лист '%s': %v", cfg.SheetName, err))
			continue
		}

		mapping, err := ResolveSourceColumns(rows, cfg)
		if err != nil {
			c.skip(result, cfg.SheetName, fmt.Sprintf("на листе '%s' не найдены столбцы '%s' и '%s'",
				cfg.SheetName, cfg.SKUColumn, cfg.PriceColumn))
			continue
		}

		if cfg.NameColumn != "" && !mapping.HasName() {
			warning := fmt.Sprintf("на листе '%s' не найден столбец названия '%s'", cfg.SheetName, cfg.NameColumn)
			result.Warnings = append(result.Warnings, warning)
			c.logger.Warn(warning, "sheet", cfg.SheetName)
		}

		read, dropped := c.consolidateSheet(result, cfg.SheetName, rows, mapping)
		result.RowsRead += read
		result.PricesDropped += dropped
		result.SheetsProcessed = append(result.SheetsProcessed, cfg.SheetName)

		c.logger.Info("лист обработан",
			"sheet", cfg.SheetName,
			"header_row", mapping.HeaderRow+1,
			"rows_read", read,
			"prices_dropped", dropped,
		)
	}

	c.notifyProgress(len(sheets), len(sheets), "Данные объединены")

	c.logger.Info("объединение источника завершено",
		"products", result.Prices.Len(),
		"names", result.Names.Len(),
		"sheets_processed", len(result.SheetsProcessed),
		"sheets_skipped", len(result.SheetsSkipped),
	)

	return result, nil
}

// consolidateSheet переносит строки данных листа в индексы
func (c *Consolidator) consolidateSheet(result *Consolidation, sheetName string, rows [][]string, mapping ColumnMapping) (read, dropped int) {
	for r := mapping.StartRow; r < len(rows); r++ {
		row := rows[r]

		sku, ok := NormalizeSKU(cellAt(row, mapping.SKU))
		if !ok {
			continue
		}
		read++

		if mapping.HasName() {
			if name := normalizeName(cellAt(row, mapping.Name)); name != "" {
				result.Names.set(name, sku)
			}
		}

		price, err := parsePrice(cellAt(row, mapping.Price))
		if err != nil {
			dropped++
			c.logger.Debug("цена не распознана", "sheet", sheetName, "row", r+1, "sku", sku)
			continue
		}
		result.Prices.set(sku, PriceEntry{Price: price, Sheet: sheetName})
	}
	return read, dropped
}

// skip отмечает лист пропущенным
func (c *Consolidator) skip(result *Consolidation, sheetName, reason string) {
	result.SheetsSkipped = append(result.SheetsSkipped, SkippedSheet{Sheet: sheetName, Reason: reason})
	result.Warnings = append(result.Warnings, reason)
	c.logger.Warn("лист пропущен", "sheet", sheetName, "reason", reason)
}

// parsePrice разбирает значение ячейки цены
func parsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}
