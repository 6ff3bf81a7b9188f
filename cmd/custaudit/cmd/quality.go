package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmcf/custaudit/internal/quality"
	"github.com/tmcf/custaudit/internal/report"
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Profile completeness, types, formats, and value validity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadInput()
		if err != nil {
			return err
		}

		profile := quality.Analyze(ds, referenceYear)

		path, err := writeReport("data_quality_report.txt", report.Quality(profile))
		if err != nil {
			return err
		}

		fmt.Printf("Profiled %d records across %d fields\n", ds.Len(), len(ds.Fields()))
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qualityCmd)
}
