package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// testSheet содержимое листа тестовой книги
type testSheet struct {
	name string
	rows [][]interface{}
}

// createTestWorkbook создает книгу с указанными листами во временной директории
func createTestWorkbook(t *testing.T, filename string, sheets ...testSheet) string {
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

	path := filepath.Join(t.TempDir(), filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("не удалось сохранить тестовую книгу: %v", err)
	}
	return path
}
