// Package cmd implements the custaudit command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmcf/custaudit/internal/dataset"
)

var (
	inputPath     string
	outputDir     string
	referenceYear int
)

var rootCmd = &cobra.Command{
	Use:   "custaudit",
	Short: "Assess the quality of a customer dataset",
	Long: `custaudit runs schema validation, data quality profiling, cleaning,
and PII detection over a customer CSV or XLSX file and writes plain-text
reports.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "data/customer_raw.csv", "input dataset file (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "docs", "directory for generated reports")
	rootCmd.PersistentFlags().IntVar(&referenceYear, "reference-year", 0, "year anchoring age checks (0 = current year)")
}

func loadInput() (*dataset.Dataset, error) {
	ds, err := dataset.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func writeReport(name, content string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func writeCSV(path string, ds *dataset.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return dataset.WriteCSV(f, ds)
}
