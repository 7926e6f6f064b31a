package gui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/DatKorso/price-updater/internal/core"
)

// guiHost реализует core.Host диалогами Fyne.
// Методы вызываются из рабочей горутины и ждут ответа оператора.
// autoApprove фиксируется при запуске прогона.
type guiHost struct {
	app         *App
	autoApprove bool
}

func (h *guiHost) ConfirmColumnMapping(ctx context.Context, req core.MappingRequest) (core.SheetColumnConfig, error) {
	type answer struct {
		cfg core.SheetColumnConfig
		ok  bool
	}
	answers := make(chan answer, 1)

	fyne.Do(func() {
		showMappingDialog(h.app.window, req, func(cfg core.SheetColumnConfig, ok bool) {
			if ok {
				h.app.currentProfile.SetSheet(cfg)
			}
			answers <- answer{cfg: cfg, ok: ok}
		})
	})

	select {
	case <-ctx.Done():
		return core.SheetColumnConfig{}, ctx.Err()
	case a := <-answers:
		if !a.ok {
			return core.SheetColumnConfig{}, core.ErrCancelled
		}
		return a.cfg, nil
	}
}

func (h *guiHost) ConfirmPreview(ctx context.Context, req core.PreviewRequest) (bool, error) {
	if h.autoApprove {
		return true, nil
	}

	answers := make(chan bool, 1)
	fyne.Do(func() {
		showPreviewDialog(h.app.window, req, func(ok bool) {
			answers <- ok
		})
	})

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case ok := <-answers:
		return ok, nil
	}
}
