package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DatKorso/price-updater/internal/core"
	"github.com/DatKorso/price-updater/internal/logger"
)

func TestCLIHostConfirmColumnMapping(t *testing.T) {
	t.Run("предложение принимается", func(t *testing.T) {
		var out bytes.Buffer
		host := newCLIHost(strings.NewReader(""), &out, false, logger.Discard())

		cfg, err := host.ConfirmColumnMapping(context.Background(), core.MappingRequest{
			SheetName: "Lista",
			Suggested: core.SheetColumnConfig{SKUColumn: "SKU", PriceColumn: "PRECIO"},
		})
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if cfg.SheetName != "Lista" || cfg.SKUColumn != "SKU" {
			t.Errorf("получено %+v", cfg)
		}
		if !strings.Contains(out.String(), "SKU=SKU") {
			t.Errorf("вывод: %q", out.String())
		}
	})

	t.Run("лист без столбцов пропускается", func(t *testing.T) {
		var out bytes.Buffer
		host := newCLIHost(strings.NewReader(""), &out, false, logger.Discard())

		_, err := host.ConfirmColumnMapping(context.Background(), core.MappingRequest{
			SheetName: "Notas",
			Preview:   &core.SheetPreview{Headers: []string{"A", "B"}},
		})
		if !errors.Is(err, core.ErrCancelled) {
			t.Errorf("ожидалась ErrCancelled, получено %v", err)
		}
		if !strings.Contains(out.String(), "A, B") {
			t.Errorf("вывод: %q", out.String())
		}
	})
}

func TestCLIHostConfirmPreview(t *testing.T) {
	req := core.PreviewRequest{
		Title:     "Reporte de Faltantes",
		Columns:   []string{"SKU", "PRECIO"},
		Rows:      [][]string{{"A-1", "10"}, {"A-2", "20"}},
		TotalRows: 12,
	}

	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{name: "флаг yes", input: "", yes: true, want: true},
		{name: "ответ y", input: "y\n", want: true},
		{name: "ответ да", input: "Да\n", want: true},
		{name: "ответ n", input: "n\n", want: false},
		{name: "конец ввода", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			host := newCLIHost(strings.NewReader(tt.input), &out, tt.yes, logger.Discard())

			got, err := host.ConfirmPreview(context.Background(), req)
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if got != tt.want {
				t.Errorf("получено %v, ожидалось %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "A-2") || !strings.Contains(out.String(), "еще 10") {
				t.Errorf("вывод: %q", out.String())
			}
		})
	}
}

func TestProgressPrinter(t *testing.T) {
	var out bytes.Buffer
	progress := progressPrinter(&out)

	progress(0, 100, "Проверка файлов")
	progress(10, 100, "Проверка файлов")
	progress(75, 100, "Файл сохранен")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("ожидалось 2 строки, получено %q", out.String())
	}
	if lines[1] != "[ 75%] Файл сохранен" {
		t.Errorf("строка: %q", lines[1])
	}
}

func TestRecordingHostProfile(t *testing.T) {
	profile := core.NewProfile("proveedor")
	profile.SetSheet(core.SheetColumnConfig{SheetName: "Notas", SKUColumn: "SKU", PriceColumn: "PRECIO"})

	host := &recordingHost{
		Host:    newCLIHost(strings.NewReader(""), io.Discard, false, logger.Discard()),
		profile: profile,
	}

	t.Run("подтвержденный лист сохраняется", func(t *testing.T) {
		_, err := host.ConfirmColumnMapping(context.Background(), core.MappingRequest{
			SheetName: "Lista",
			Suggested: core.SheetColumnConfig{SKUColumn: "CODIGO", PriceColumn: "COSTO"},
		})
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if cfg := profile.GetSheetConfig("Lista"); cfg == nil || cfg.SKUColumn != "CODIGO" {
			t.Errorf("конфигурация не сохранена: %+v", cfg)
		}
	})

	t.Run("пропущенный лист удаляется", func(t *testing.T) {
		_, err := host.ConfirmColumnMapping(context.Background(), core.MappingRequest{SheetName: "Notas"})
		if !errors.Is(err, core.ErrCancelled) {
			t.Fatalf("ожидалась ErrCancelled, получено %v", err)
		}
		if profile.GetSheetConfig("Notas") != nil {
			t.Error("пропущенный лист должен быть удален из профиля")
		}
	})
}
