package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmcf/custaudit/internal/pii"
	"github.com/tmcf/custaudit/internal/report"
)

var piiCmd = &cobra.Command{
	Use:   "pii",
	Short: "Detect PII exposure across the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadInput()
		if err != nil {
			return err
		}

		findings := pii.Detect(ds)

		path, err := writeReport("pii_detection_report.txt", report.PII(findings))
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d records for PII\n", ds.Len())
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Produce a masked copy of the dataset with PII obscured",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadInput()
		if err != nil {
			return err
		}

		masked := pii.Mask(ds)

		outPath := filepath.Join(outputDir, "customers_masked.csv")
		if err := writeCSV(outPath, masked); err != nil {
			return err
		}

		samplePath, err := writeReport("masked_sample.txt", report.MaskedSample(ds, masked, 3))
		if err != nil {
			return err
		}

		fmt.Printf("Masked %d records\n", masked.Len())
		fmt.Printf("Masked dataset written to %s\n", outPath)
		fmt.Printf("Sample comparison written to %s\n", samplePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(piiCmd)
	rootCmd.AddCommand(maskCmd)
}
