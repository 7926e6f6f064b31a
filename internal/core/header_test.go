package core

import "testing"

func TestLocateHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{
			name:     "пустой лист",
			rows:     nil,
			expected: 0,
		},
		{
			name:     "заголовок в первой строке",
			rows:     [][]string{{"SKU", "PRECIO"}, {"A1", "10"}},
			expected: 0,
		},
		{
			name: "заголовок после титула",
			rows: [][]string{
				{"Lista 2025"},
				{},
				{"", "Codigo", "Precio lista"},
				{"", "A1", "10"},
			},
			expected: 2,
		},
		{
			name:     "ключевое слово внутри текста",
			rows:     [][]string{{"Proveedor"}, {"Item", "Unit price"}},
			expected: 1,
		},
		{
			name:     "нет ключевых слов",
			rows:     [][]string{{"a", "b"}, {"c", "d"}},
			expected: 0,
		},
		{
			name:     "первая подходящая строка",
			rows:     [][]string{{"x"}, {"PRICE"}, {"SKU"}},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocateHeaderRow(tt.rows); got != tt.expected {
				t.Errorf("LocateHeaderRow() = %d, ожидалось %d", got, tt.expected)
			}
		})
	}
}

func TestLocateHeaderRowStaysInWindow(t *testing.T) {
	rows := make([][]string, 40)
	for i := range rows {
		rows[i] = []string{"dato"}
	}
	rows[30] = []string{"SKU", "PRECIO"}

	window := headWindow(rows, HeaderScanRows)
	got := LocateHeaderRow(window)
	if got != 0 {
		t.Errorf("заголовок вне окна не должен находиться, получено %d", got)
	}
	if got >= len(window) {
		t.Errorf("индекс %d вне окна из %d строк", got, len(window))
	}
}
