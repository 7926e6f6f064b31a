package core

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

func TestConsolidateScenario(t *testing.T) {
	source := newFakeSource().addSheet("Sheet1", [][]string{
		{"SKU", "PRECIO", "NOMBRE"},
		{"A1", "10.5", "Widget"},
		{"A2", "bad", "Gadget"},
	})

	consolidator := NewConsolidator(testLogger())
	result, err := consolidator.Consolidate(source, []SheetColumnConfig{
		{SheetName: "Sheet1", SKUColumn: "SKU", PriceColumn: "PRECIO", NameColumn: "NOMBRE"},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if !reflect.DeepEqual(result.Prices.Keys(), []string{"A1"}) {
		t.Errorf("индекс цен: %v", result.Prices.Keys())
	}
	entry, ok := result.Prices.Lookup("A1")
	if !ok || !entry.Price.Equal(decimal.RequireFromString("10.5")) || entry.Sheet != "Sheet1" {
		t.Errorf("неверная цена A1: %+v", entry)
	}

	t.Run("название без цены остается в индексе", func(t *testing.T) {
		if sku, ok := result.Names.Lookup("Gadget"); !ok || sku != "A2" {
			t.Errorf("Gadget -> %q, %v", sku, ok)
		}
		if sku, _ := result.Names.Lookup("Widget"); sku != "A1" {
			t.Errorf("Widget -> %q", sku)
		}
		if result.Names.Len() != 2 {
			t.Errorf("ожидалось 2 названия, получено %d", result.Names.Len())
		}
	})

	if result.PricesDropped != 1 {
		t.Errorf("ожидалась 1 отброшенная цена, получено %d", result.PricesDropped)
	}
	if !reflect.DeepEqual(result.SheetsProcessed, []string{"Sheet1"}) {
		t.Errorf("обработанные листы: %v", result.SheetsProcessed)
	}
}

func TestConsolidateLastWriteWins(t *testing.T) {
	source := newFakeSource().
		addSheet("Lista1", [][]string{
			{"SKU", "PRECIO", "NOMBRE"},
			{"A1", "10", "Widget"},
			{"B1", "3", "Tornillo"},
		}).
		addSheet("Lista2", [][]string{
			{"Proveedor 2"},
			{"CODIGO", "COSTO", "PRODUCTO"},
			{"'a1", "12.25", "Widget Pro"},
		})

	consolidator := NewConsolidator(testLogger())
	result, err := consolidator.Consolidate(source, []SheetColumnConfig{
		{SheetName: "Lista1", SKUColumn: "SKU", PriceColumn: "PRECIO", NameColumn: "NOMBRE"},
		{SheetName: "Lista2", SKUColumn: "CODIGO", PriceColumn: "COSTO", NameColumn: "PRODUCTO"},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	entry, _ := result.Prices.Lookup("A1")
	if !entry.Price.Equal(decimal.RequireFromString("12.25")) || entry.Sheet != "Lista2" {
		t.Errorf("ожидалась цена второго листа, получено %+v", entry)
	}

	if !reflect.DeepEqual(result.Prices.Keys(), []string{"A1", "B1"}) {
		t.Errorf("порядок ключей должен сохраняться: %v", result.Prices.Keys())
	}
	if name := result.Names.NameOf("A1"); name != "Widget Pro" {
		t.Errorf("ожидалось последнее название, получено %q", name)
	}
}

func TestConsolidateSkipsSheets(t *testing.T) {
	source := newFakeSource().
		addSheet("Buena", [][]string{
			{"SKU", "PRECIO"},
			{"A1", "5"},
		}).
		addSheet("Mala", [][]string{
			{"Referencia", "Valor"},
			{"X1", "7"},
		})

	consolidator := NewConsolidator(testLogger())
	result, err := consolidator.Consolidate(source, []SheetColumnConfig{
		{SheetName: "Mala", SKUColumn: "SKU", PriceColumn: "PRECIO"},
		{SheetName: "Falta", SKUColumn: "SKU", PriceColumn: "PRECIO"},
		{SheetName: "Buena", SKUColumn: "SKU", PriceColumn: "PRECIO"},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if result.Prices.Len() != 1 {
		t.Errorf("ожидался 1 товар, получено %d", result.Prices.Len())
	}
	if len(result.SheetsSkipped) != 2 || result.SheetsSkipped[0].Sheet != "Mala" || result.SheetsSkipped[1].Sheet != "Falta" {
		t.Errorf("пропущенные листы: %+v", result.SheetsSkipped)
	}
	if !reflect.DeepEqual(result.SheetsProcessed, []string{"Buena"}) {
		t.Errorf("обработанные листы: %v", result.SheetsProcessed)
	}
}

func TestConsolidateRows(t *testing.T) {
	source := newFakeSource().addSheet("Hoja", [][]string{
		{"SKU", "PRECIO", "NOMBRE"},
		{"", "10", "Sin codigo"},
		{"C1"},
		{"C2", " 7.50 ", ""},
		{"C3", "1e2", "  "},
	})

	consolidator := NewConsolidator(testLogger())
	result, err := consolidator.Consolidate(source, []SheetColumnConfig{
		{SheetName: "Hoja", SKUColumn: "SKU", PriceColumn: "PRECIO", NameColumn: "NOMBRE"},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if !reflect.DeepEqual(result.Prices.Keys(), []string{"C2", "C3"}) {
		t.Errorf("индекс цен: %v", result.Prices.Keys())
	}
	if entry, _ := result.Prices.Lookup("C3"); !entry.Price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("цена C3: %v", entry.Price)
	}
	if result.Names.Len() != 0 {
		t.Errorf("пустые названия не должны попадать в индекс: %v", result.Names.Names())
	}
	if result.RowsRead != 3 {
		t.Errorf("ожидалось 3 строки с SKU, получено %d", result.RowsRead)
	}
}

func TestConsolidateProgress(t *testing.T) {
	source := newFakeSource().
		addSheet("A", [][]string{{"SKU", "PRECIO"}, {"A1", "1"}}).
		addSheet("B", [][]string{{"SKU", "PRECIO"}, {"B1", "2"}})

	consolidator := NewConsolidator(testLogger())
	var updates []ProgressUpdate
	consolidator.SetProgressCallback(func(current, total int, message string) {
		updates = append(updates, ProgressUpdate{Current: current, Total: total, Message: message})
	})

	if _, err := consolidator.Consolidate(source, []SheetColumnConfig{
		{SheetName: "A", SKUColumn: "SKU", PriceColumn: "PRECIO"},
		{SheetName: "B", SKUColumn: "SKU", PriceColumn: "PRECIO"},
	}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("ожидалось 3 обновления, получено %d", len(updates))
	}
	if last := updates[len(updates)-1]; last.Percent() != 100 {
		t.Errorf("последнее обновление должно быть 100%%, получено %v", last.Percent())
	}
}

func TestConsolidateNoSheets(t *testing.T) {
	consolidator := NewConsolidator(testLogger())
	_, err := consolidator.Consolidate(newFakeSource(), nil)
	if !apperrors.IsCode(err, apperrors.ErrCodeConfigError) {
		t.Errorf("ожидалась ошибка %s, получено %v", apperrors.ErrCodeConfigError, err)
	}
}
