package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"video2md/internal/app"
	"video2md/internal/app/export"
	"video2md/internal/config"
)

var (
	configPath     string
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "config file path")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "runs.xlsx", "output xlsx file path")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max runs to export, newest first (0 = all)")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to excel",
	Long: `Export run history to excel

- Writes the recorded runs (input, title, transcript, outcome) to an xlsx workbook`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(configPath)
		if err != nil {
			return err
		}

		dao, err := app.NewHistoryDAO(settings)
		if err != nil {
			return err
		}
		defer dao.Close()

		runs, err := dao.GetAll(limit)
		if err != nil {
			return err
		}

		if err := export.ToExcel(runs, outputFilePath); err != nil {
			return err
		}
		fmt.Printf("export finished, %d runs written to %s\n", len(runs), outputFilePath)
		return nil
	},
}
