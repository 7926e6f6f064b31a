package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeSource книга источника в памяти
type fakeSource struct {
	order  []string
	sheets map[string][][]string
}

func newFakeSource() *fakeSource {
	return &fakeSource{sheets: make(map[string][][]string)}
}

func (s *fakeSource) addSheet(name string, rows [][]string) *fakeSource {
	s.order = append(s.order, name)
	s.sheets[name] = rows
	return s
}

func (s *fakeSource) GetSheetNames() []string {
	return s.order
}

func (s *fakeSource) GetRows(sheetName string) ([][]string, error) {
	rows, ok := s.sheets[sheetName]
	if !ok {
		return nil, fmt.Errorf("лист '%s' не найден", sheetName)
	}
	return rows, nil
}

// cellWrite одна запись в книгу назначения
type cellWrite struct {
	row, col int
	value    float64
}

// fakeDestination книга назначения в памяти, запоминающая изменения
type fakeDestination struct {
	rows        [][]string
	writes      []cellWrite
	highlighted map[int]int // строка -> lastCol
}

func newFakeDestination(rows [][]string) *fakeDestination {
	return &fakeDestination{rows: rows, highlighted: make(map[int]int)}
}

func (d *fakeDestination) GetRows(string) ([][]string, error) {
	snapshot := make([][]string, len(d.rows))
	for i, row := range d.rows {
		snapshot[i] = append([]string(nil), row...)
	}
	return snapshot, nil
}

func (d *fakeDestination) SetCellFloat(_ string, row, col int, value float64) error {
	d.writes = append(d.writes, cellWrite{row: row, col: col, value: value})
	for len(d.rows[row-1]) < col {
		d.rows[row-1] = append(d.rows[row-1], "")
	}
	d.rows[row-1][col-1] = fmt.Sprint(value)
	return nil
}

func (d *fakeDestination) HighlightRow(_ string, row, lastCol int) error {
	d.highlighted[row] = lastCol
	return nil
}

// stubHost хост с заранее заданными ответами
type stubHost struct {
	mu        sync.Mutex
	mappings  map[string]SheetColumnConfig // нет записи -> предложенные столбцы
	cancelled map[string]bool
	approve   bool

	mappingRequests []MappingRequest
	previews        []PreviewRequest
}

func (h *stubHost) ConfirmColumnMapping(_ context.Context, req MappingRequest) (SheetColumnConfig, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.mappingRequests = append(h.mappingRequests, req)
	if h.cancelled[req.SheetName] {
		return SheetColumnConfig{}, ErrCancelled
	}
	if cfg, ok := h.mappings[req.SheetName]; ok {
		return cfg, nil
	}
	return req.Suggested, nil
}

func (h *stubHost) ConfirmPreview(_ context.Context, req PreviewRequest) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.previews = append(h.previews, req)
	return h.approve, nil
}

// testSheet содержимое листа тестовой книги
type testSheet struct {
	name string
	rows [][]interface{}
}

// createTestWorkbook создает книгу с указанными листами в директории dir
func createTestWorkbook(t *testing.T, dir, filename string, sheets ...testSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				t.Fatalf("не удалось переименовать лист: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			t.Fatalf("не удалось создать лист: %v", err)
		}

		for r, row := range sheet.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := row
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				t.Fatalf("не удалось записать строку: %v", err)
			}
		}
	}

	path := filepath.Join(dir, filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("не удалось сохранить тестовую книгу: %v", err)
	}
	return path
}
