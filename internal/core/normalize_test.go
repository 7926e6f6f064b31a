package core

import "testing"

func TestNormalizeSKU(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "обычное значение", raw: "ab-12", expected: "AB-12", ok: true},
		{name: "пробелы", raw: "  a1 ", expected: "A1", ok: true},
		{name: "текстовый апостроф", raw: "'00123", expected: "00123", ok: true},
		{name: "апостроф и пробелы", raw: " ' x9 ", expected: "X9", ok: true},
		{name: "двойной апостроф", raw: "''a", expected: "A", ok: true},
		{name: "число", raw: "1001", expected: "1001", ok: true},
		{name: "пусто", raw: "", expected: "", ok: false},
		{name: "только пробелы", raw: "   ", expected: "", ok: false},
		{name: "только апостроф", raw: "'", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeSKU(tt.raw)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("NormalizeSKU(%q) = (%q, %v), ожидалось (%q, %v)", tt.raw, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestNormalizeSKUIdempotent(t *testing.T) {
	inputs := []string{"a1", " 'b2", "''c3", "' ' d4", "ÁRBOL-1", "x y", "'", "", "  '  '  "}

	for _, raw := range inputs {
		once, _ := NormalizeSKU(raw)
		twice, _ := NormalizeSKU(once)
		if once != twice {
			t.Errorf("нормализация не идемпотентна для %q: %q -> %q", raw, once, twice)
		}
	}
}
