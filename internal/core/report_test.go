package core

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleUnmatched(n int) []UnmatchedItem {
	items := make([]UnmatchedItem, n)
	for i := range items {
		items[i] = UnmatchedItem{
			SKU:         "A" + string(rune('0'+i%10)),
			Name:        "Producto",
			Price:       decimal.RequireFromString("1234.5"),
			OriginSheet: "Lista",
		}
	}
	return items
}

func TestAssembleWritesReports(t *testing.T) {
	dir := t.TempDir()
	host := &stubHost{approve: true}
	assembler := NewReportAssembler(testLogger())

	unmatched := []UnmatchedItem{{SKU: "A3", Name: "Tornillo", Price: decimal.RequireFromString("7.5"), OriginSheet: "Otros"}}
	suggestions := []FuzzySuggestion{{Title: "Tornillo 3mm", MatchedName: "Tornillo", SuggestedSKU: "A3", Percent: 84, OriginSheet: "Otros"}}

	outcome, err := assembler.Assemble(context.Background(), host, dir, unmatched, suggestions)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	expectedFiles := []string{filepath.Join(dir, MissingReportFile), filepath.Join(dir, LinkReportFile)}
	if !reflect.DeepEqual(outcome.Files, expectedFiles) || outcome.Skipped {
		t.Fatalf("результат: %+v", outcome)
	}

	if len(host.previews) != 1 || host.previews[0].Title != "Reporte de Faltantes" {
		t.Fatalf("ожидался предпросмотр ненайденных позиций: %+v", host.previews)
	}

	t.Run("отчет по ненайденным", func(t *testing.T) {
		f, err := excelize.OpenFile(expectedFiles[0])
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{MissingReportSheet}) {
			t.Errorf("листы: %v", sheets)
		}
		rows, _ := f.GetRows(MissingReportSheet, excelize.Options{RawCellValue: true})
		expected := [][]string{
			{"SKU", "NOMBRE PRODUCTO", "PRECIO LISTA", "HOJA ORIGEN"},
			{"A3", "Tornillo", "7.5", "Otros"},
		}
		if !reflect.DeepEqual(rows, expected) {
			t.Errorf("строки: %v", rows)
		}

		styleID, _ := f.GetCellStyle(MissingReportSheet, "C2")
		style, err := f.GetStyle(styleID)
		if err != nil {
			t.Fatal(err)
		}
		if style.CustomNumFmt == nil || *style.CustomNumFmt != `"$"#,##0.00` {
			t.Errorf("ожидался денежный формат, получено %v", style.CustomNumFmt)
		}
	})

	t.Run("отчет по связям", func(t *testing.T) {
		f, err := excelize.OpenFile(expectedFiles[1])
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		rows, _ := f.GetRows(LinkReportSheet)
		if len(rows) != 2 || !reflect.DeepEqual(rows[0], linkReportHeaders) {
			t.Fatalf("строки: %v", rows)
		}
		if rows[1][3] != "84%" || rows[1][2] != "A3" {
			t.Errorf("строка связи: %v", rows[1])
		}
	})
}

func TestAssembleRejected(t *testing.T) {
	dir := t.TempDir()
	host := &stubHost{approve: false}
	assembler := NewReportAssembler(testLogger())

	outcome, err := assembler.Assemble(context.Background(), host, dir, sampleUnmatched(3), nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !outcome.Skipped || len(outcome.Files) != 0 {
		t.Errorf("результат: %+v", outcome)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("файлы не должны создаваться: %v", entries)
	}
}

func TestAssemblePreviewGate(t *testing.T) {
	t.Run("нет данных", func(t *testing.T) {
		host := &stubHost{approve: true}
		outcome, err := NewReportAssembler(testLogger()).Assemble(context.Background(), host, t.TempDir(), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(host.previews) != 0 || len(outcome.Files) != 0 {
			t.Errorf("предпросмотр не нужен: %+v", host.previews)
		}
	})

	t.Run("только связи", func(t *testing.T) {
		dir := t.TempDir()
		host := &stubHost{approve: true}
		suggestions := []FuzzySuggestion{{Title: "x", MatchedName: "y", SuggestedSKU: "Z", Percent: 40, OriginSheet: "-"}}

		outcome, err := NewReportAssembler(testLogger()).Assemble(context.Background(), host, dir, nil, suggestions)
		if err != nil {
			t.Fatal(err)
		}
		if len(host.previews) != 1 || !reflect.DeepEqual(host.previews[0].Columns, linkReportHeaders) {
			t.Errorf("ожидался предпросмотр связей: %+v", host.previews)
		}
		if !reflect.DeepEqual(outcome.Files, []string{filepath.Join(dir, LinkReportFile)}) {
			t.Errorf("файлы: %v", outcome.Files)
		}
	})

	t.Run("ограничение предпросмотра", func(t *testing.T) {
		host := &stubHost{approve: false}
		if _, err := NewReportAssembler(testLogger()).Assemble(context.Background(), host, t.TempDir(), sampleUnmatched(120), nil); err != nil {
			t.Fatal(err)
		}
		req := host.previews[0]
		if len(req.Rows) != MaxPreviewRows || req.TotalRows != 120 {
			t.Errorf("предпросмотр: %d строк из %d", len(req.Rows), req.TotalRows)
		}
		if !reflect.DeepEqual(req.Columns, []string{"SKU", "NOMBRE", "PRECIO", "HOJA ORIGEN"}) {
			t.Errorf("столбцы: %v", req.Columns)
		}
	})

	t.Run("без хоста", func(t *testing.T) {
		outcome, err := NewReportAssembler(testLogger()).Assemble(context.Background(), nil, t.TempDir(), sampleUnmatched(1), nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(outcome.Files) != 1 {
			t.Errorf("файлы: %v", outcome.Files)
		}
	})
}
