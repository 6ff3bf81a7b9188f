package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmcf/custaudit/internal/cleaning"
	"github.com/tmcf/custaudit/internal/report"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize formats and fill missing values, writing a cleaned copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadInput()
		if err != nil {
			return err
		}

		cleaned, log := cleaning.Clean(ds)

		outPath := filepath.Join(outputDir, "customers_cleaned.csv")
		if err := writeCSV(outPath, cleaned); err != nil {
			return err
		}

		logPath, err := writeReport("cleaning_log.txt", report.CleaningLog(log))
		if err != nil {
			return err
		}

		fmt.Printf("Cleaned %d records\n", cleaned.Len())
		fmt.Printf("Cleaned dataset written to %s\n", outPath)
		fmt.Printf("Cleaning log written to %s\n", logPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
