package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/DatKorso/price-updater/internal/core"
	apperrors "github.com/DatKorso/price-updater/internal/errors"
)

var (
	sourcePath       string
	sourceSheets     []string
	destinationPath  string
	destinationSheet string
	skuColumn        string
	titleColumn      string
	outputPath       string
	profileName      string
	saveProfileAs    string
	assumeYes        bool
	threshold        float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Обновить цены в копии файла публикаций",
	Example: `  price-updater-cli run -s precios.xlsx -d publicaciones.xlsx
  price-updater-cli run -s precios.xlsx --sheets Lista,Otros -d ml.xlsx -o ml_nuevo.xlsx --yes
  price-updater-cli run -p proveedor -s precios.xlsx -d ml.xlsx`,
	RunE: runUpdate,
}

func init() {
	runCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "прайс-лист поставщика (.xlsx)")
	runCmd.Flags().StringSliceVar(&sourceSheets, "sheets", nil, "листы прайс-листа через запятую (по умолчанию из профиля или все)")
	runCmd.Flags().StringVarP(&destinationPath, "destination", "d", "", "файл публикаций (.xlsx)")
	runCmd.Flags().StringVar(&destinationSheet, "sheet", "", "лист файла публикаций")
	runCmd.Flags().StringVar(&skuColumn, "sku-column", "", "столбец SKU файла публикаций")
	runCmd.Flags().StringVar(&titleColumn, "title-column", "", "столбец заголовка файла публикаций")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "путь копии с новыми ценами")
	runCmd.Flags().StringVarP(&profileName, "profile", "p", "", "сохраненный профиль")
	runCmd.Flags().StringVar(&saveProfileAs, "save-profile", "", "сохранить использованные столбцы в профиль")
	runCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "сохранять отчеты без подтверждения")
	runCmd.Flags().Float64Var(&threshold, "threshold", core.DefaultSimilarityThreshold, "порог похожести названий (0..1]")

	_ = runCmd.MarkFlagRequired("source")
	_ = runCmd.MarkFlagRequired("destination")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile()
	if err != nil {
		return err
	}

	req, err := buildRunRequest(profile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	host := newCLIHost(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes, appLogger)
	reconciler := core.NewReconciler(&recordingHost{Host: host, profile: profile}, appLogger)
	reconciler.SetSimilarityThreshold(threshold)
	reconciler.SetProgressCallback(progressPrinter(cmd.ErrOrStderr()))

	result, err := reconciler.Run(ctx, req)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	if saveProfileAs != "" {
		profile.ProfileName = saveProfileAs
		profile.SourceFile = req.SourcePath
		profile.Destination.SheetName = req.DestinationSheet
		profile.Destination.SKUColumn = req.DestinationSKUColumn
		profile.Destination.TitleColumn = req.DestinationTitleColumn
		if err := configManager.SaveProfile(profile, saveProfileAs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Профиль '%s' сохранен\n", saveProfileAs)
	}
	return nil
}

// loadProfile загружает профиль по имени или создает пустой
func loadProfile() (*core.Profile, error) {
	if profileName == "" {
		return core.NewProfile("cli"), nil
	}
	return configManager.LoadProfile(profileName)
}

// buildRunRequest дополняет флаги значениями профиля и заголовков книг
func buildRunRequest(profile *core.Profile) (core.RunRequest, error) {
	source := core.NewSheetAnalyzer(appLogger)
	if err := source.AnalyzeFile(sourcePath); err != nil {
		return core.RunRequest{}, err
	}
	defer source.Close()

	sheets := sourceSheets
	if len(sheets) == 0 {
		for _, cfg := range profile.Sheets {
			if slices.Contains(source.GetSheetNames(), cfg.SheetName) {
				sheets = append(sheets, cfg.SheetName)
			}
		}
	}
	if len(sheets) == 0 {
		sheets = source.GetSheetNames()
	}

	dest := core.NewSheetAnalyzer(appLogger)
	if err := dest.AnalyzeFile(destinationPath); err != nil {
		return core.RunRequest{}, err
	}
	defer dest.Close()

	sheet := destinationSheet
	if sheet == "" {
		sheet = dest.DefaultSheet(profile.Destination.SheetName)
	}

	sku, title := skuColumn, titleColumn
	if sku == "" || title == "" {
		preview, err := dest.Preview(sheet, core.HeaderScanRows)
		if err != nil {
			return core.RunRequest{}, err
		}
		suggestedSKU, suggestedTitle := core.SuggestDestinationColumns(preview.Headers)
		if sku == "" {
			sku = cmp.Or(profile.Destination.SKUColumn, suggestedSKU)
		}
		if title == "" {
			title = cmp.Or(profile.Destination.TitleColumn, suggestedTitle)
		}
	}
	if sku == "" {
		return core.RunRequest{}, apperrors.NewDestinationColumnsError(sheet, "SKU")
	}

	output := outputPath
	if output == "" {
		output = filepath.Join(filepath.Dir(destinationPath), cmp.Or(profile.Destination.OutputName, core.DefaultOutputName))
	}

	return core.RunRequest{
		SourcePath:             sourcePath,
		SourceSheets:           sheets,
		Profile:                profile.Clone(),
		DestinationPath:        destinationPath,
		DestinationSheet:       sheet,
		DestinationSKUColumn:   sku,
		DestinationTitleColumn: title,
		SavePath:               output,
	}, nil
}

// recordingHost запоминает подтвержденные столбцы листов в профиле,
// пропущенные листы из профиля удаляются
type recordingHost struct {
	core.Host
	profile *core.Profile
}

func (h *recordingHost) ConfirmColumnMapping(ctx context.Context, req core.MappingRequest) (core.SheetColumnConfig, error) {
	cfg, err := h.Host.ConfirmColumnMapping(ctx, req)
	switch {
	case err == nil:
		h.profile.SetSheet(cfg)
	case errors.Is(err, core.ErrCancelled):
		h.profile.RemoveSheet(req.SheetName)
	}
	return cfg, err
}
