package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DatKorso/price-updater/internal/core"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets FILE",
	Short: "Показать листы книги, строку заголовков и предлагаемые столбцы",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer := core.NewSheetAnalyzer(appLogger)
		if err := analyzer.AnalyzeFile(args[0]); err != nil {
			return err
		}
		defer analyzer.Close()

		out := cmd.OutOrStdout()
		for _, name := range analyzer.GetSheetNames() {
			preview, err := analyzer.Preview(name, core.HeaderScanRows)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", name, err)
				continue
			}

			fmt.Fprintf(out, "%s (заголовки в строке %d)\n", name, preview.HeaderRow+1)
			fmt.Fprintf(out, "  столбцы: %s\n", strings.Join(preview.Headers, ", "))

			suggested := core.SuggestSourceColumns(name, preview.Headers)
			if suggested.Validate() == nil {
				fmt.Fprintf(out, "  как источник: SKU=%s, цена=%s, название=%s\n",
					suggested.SKUColumn, suggested.PriceColumn, suggested.NameColumn)
			}
			if sku, title := core.SuggestDestinationColumns(preview.Headers); sku != "" {
				fmt.Fprintf(out, "  как назначение: SKU=%s, заголовок=%s\n", sku, title)
			}
		}
		return nil
	},
}
