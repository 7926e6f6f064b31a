package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Список сохраненных профилей",
	RunE: func(cmd *cobra.Command, _ []string) error {
		profiles, err := configManager.ListProfiles()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Профилей нет (%s)\n", configManager.GetProfilesDir())
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ФАЙЛ\tИМЯ\tЛИСТОВ\tИСТОЧНИК\tОБНОВЛЕН")
		for _, p := range profiles {
			if p.IsCorrupt {
				fmt.Fprintf(w, "%s\t(поврежден)\t-\t-\t%s\n", p.Filename, p.ModTime.Format("2006-01-02 15:04"))
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", p.Filename, p.Name, p.SheetsCount, p.SourceFile, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export NAME DIR",
	Short: "Экспортировать профиль в директорию",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configManager.ExportProfile(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Профиль экспортирован: %s\n", path)
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Импортировать профиль из JSON файла",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := configManager.ImportProfile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Профиль '%s' импортирован\n", profile.ProfileName)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Удалить профиль",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configManager.DeleteProfile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Профиль '%s' удален\n", args[0])
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profileExportCmd, profileImportCmd, profileDeleteCmd)
}
