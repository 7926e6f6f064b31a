package main

import (
	"fmt"
	"io"
	"time"

	"github.com/DatKorso/price-updater/internal/core"
)

// progressPrinter печатает этапы прогона, повторяющиеся сообщения пропускаются
func progressPrinter(w io.Writer) core.ProgressCallback {
	last := ""
	return func(current, total int, message string) {
		if message == last {
			return
		}
		last = message
		update := core.ProgressUpdate{Current: current, Total: total, Message: message}
		fmt.Fprintf(w, "[%3.0f%%] %s\n", update.Percent(), message)
	}
}

func printResult(w io.Writer, result *core.RunResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, result.Summary())
	fmt.Fprintf(w, "\nФайл: %s\n", result.OutputPath)
	fmt.Fprintf(w, "Время выполнения: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "SKU без публикации: %d\n", len(result.Unmatched))
	fmt.Fprintf(w, "Предложений связывания: %d\n", len(result.Suggestions))

	for _, f := range result.ReportFiles {
		fmt.Fprintf(w, "Отчет: %s\n", f)
	}
	for _, s := range result.SkippedSheets {
		fmt.Fprintf(w, "Лист пропущен: %s (%s)\n", s.Sheet, s.Reason)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Предупреждение: %s\n", warning)
	}
}
