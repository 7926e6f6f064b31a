package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/DatKorso/price-updater/internal/core"
)

const consolePreviewRows = 10

// cliHost реализует core.Host для консоли: столбцы берутся из предложения,
// отчеты подтверждаются вопросом или флагом --yes.
type cliHost struct {
	in     *bufio.Reader
	out    io.Writer
	yes    bool
	logger *slog.Logger
}

func newCLIHost(in io.Reader, out io.Writer, yes bool, logger *slog.Logger) *cliHost {
	return &cliHost{
		in:     bufio.NewReader(in),
		out:    out,
		yes:    yes,
		logger: logger,
	}
}

func (h *cliHost) ConfirmColumnMapping(_ context.Context, req core.MappingRequest) (core.SheetColumnConfig, error) {
	cfg := req.Suggested
	cfg.SheetName = req.SheetName

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(h.out, "Лист '%s' пропущен: столбцы SKU и цены не определены\n", req.SheetName)
		if req.Preview != nil {
			fmt.Fprintf(h.out, "  Заголовки: %s\n", strings.Join(req.Preview.Headers, ", "))
		}
		h.logger.Warn("столбцы листа не определены", "sheet", req.SheetName, "error", err)
		return core.SheetColumnConfig{}, core.ErrCancelled
	}

	name := cfg.NameColumn
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(h.out, "Лист '%s': SKU=%s, цена=%s, название=%s\n", req.SheetName, cfg.SKUColumn, cfg.PriceColumn, name)
	return cfg, nil
}

func (h *cliHost) ConfirmPreview(_ context.Context, req core.PreviewRequest) (bool, error) {
	fmt.Fprintf(h.out, "\n%s: строк %d\n", req.Title, req.TotalRows)
	h.printRows(req)

	if h.yes {
		return true, nil
	}

	fmt.Fprint(h.out, "Сохранить отчеты? [y/N]: ")
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(h.out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да", "s", "si":
		return true, nil
	}
	return false, nil
}

func (h *cliHost) printRows(req core.PreviewRequest) {
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(req.Columns, "\t"))
	for i, row := range req.Rows {
		if i == consolePreviewRows {
			break
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	if rest := req.TotalRows - min(len(req.Rows), consolePreviewRows); rest > 0 {
		fmt.Fprintf(h.out, "... еще %d\n", rest)
	}
}
