package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmcf/custaudit/internal/quality"
	"github.com/tmcf/custaudit/internal/report"
	"github.com/tmcf/custaudit/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate records against the field rules and classify failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadInput()
		if err != nil {
			return err
		}

		run, err := validation.Validate(ds)
		if err != nil {
			return err
		}

		profile := quality.Analyze(ds, referenceYear)
		tally := validation.Classify(validation.ClassifierInput{
			Failures:        run.Failures,
			MissingCounts:   profile.MissingCounts(),
			UnrealisticAges: profile.UnrealisticAgeCount(),
		})
		result := validation.Assemble(run, tally)

		path, err := writeReport("validation_results.txt", report.Validation(result))
		if err != nil {
			return err
		}

		fmt.Printf("Validated %d records: %d passed, %d failed\n",
			result.TotalRecords, result.PassCount, result.FailedCount)
		fmt.Printf("Severity: %d critical, %d high, %d medium\n",
			result.Severity.Critical, result.Severity.High, result.Severity.Medium)
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
