package gui

import (
	"context"
	"testing"

	"github.com/DatKorso/price-updater/internal/config"
	"github.com/DatKorso/price-updater/internal/core"
)

func TestGUIHostAutoApprove(t *testing.T) {
	app := &App{settings: config.DefaultSettings()}
	host := &guiHost{app: app, autoApprove: true}

	// Переключатель меняется во время прогона, хост использует значение на момент запуска
	app.settings.AutoApproveReports = false

	ok, err := host.ConfirmPreview(context.Background(), core.PreviewRequest{Title: "Reporte de Faltantes", TotalRows: 3})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !ok {
		t.Error("предпросмотр должен подтверждаться автоматически")
	}
}
