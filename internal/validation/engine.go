// Package validation runs the rule catalog over a dataset, accumulates
// failures, classifies them by severity, and assembles the structured
// assessment result.
package validation

import (
	"fmt"

	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/rules"
)

// SchemaError signals a structural input defect: a required field is entirely
// absent from the dataset schema. No partial result is produced.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required field %q missing from dataset", e.Field)
}

// Failure records every violated rule for one (record, field) pair. A field
// with multiple violated rules yields one failure carrying all issues, in rule
// declaration order. Failures are append-only.
type Failure struct {
	Row    int           `json:"row"`
	Field  string        `json:"field"`
	Issues []rules.Issue `json:"issues"`
}

// IssueTexts returns the human-readable issue strings in reported order.
func (f Failure) IssueTexts() []string {
	texts := make([]string, len(f.Issues))
	for i, issue := range f.Issues {
		texts[i] = issue.Text
	}
	return texts
}

// Run holds the accumulated state of one validation pass. The pass set is
// derived from the failed-row set, so the two can never drift apart.
type Run struct {
	Total    int
	Failures []Failure

	failedRows map[int]struct{}
}

// FailedRecordCount returns the number of distinct records with at least one
// failure.
func (r *Run) FailedRecordCount() int {
	return len(r.failedRows)
}

// PassCount returns the size of the pass set.
func (r *Run) PassCount() int {
	return r.Total - len(r.failedRows)
}

// PassedRows returns the 1-based input line numbers of records with zero
// failures across all fields, in record order.
func (r *Run) PassedRows() []int {
	var passed []int
	for i := 0; i < r.Total; i++ {
		if _, failed := r.failedRows[i]; !failed {
			passed = append(passed, dataset.RowNumber(i))
		}
	}
	return passed
}

// FailuresByField groups failures by field in catalog declaration order,
// preserving record order within each field.
func (r *Run) FailuresByField() map[string][]Failure {
	grouped := make(map[string][]Failure)
	for _, f := range r.Failures {
		grouped[f.Field] = append(grouped[f.Field], f)
	}
	return grouped
}

func (r *Run) addFailure(recordIdx int, field string, issues []rules.Issue) {
	r.Failures = append(r.Failures, Failure{
		Row:    dataset.RowNumber(recordIdx),
		Field:  field,
		Issues: issues,
	})
	// Exclusion from the pass set is idempotent.
	r.failedRows[recordIdx] = struct{}{}
}

// Validate applies the full rule catalog to every record. Value-level defects
// become failures and never abort the run; a missing required field aborts
// with *SchemaError before any rule executes. For a fixed dataset the failure
// collection and pass set are exactly reproducible.
func Validate(ds *dataset.Dataset) (*Run, error) {
	for _, field := range rules.FieldOrder() {
		if !ds.HasField(field) {
			return nil, &SchemaError{Field: field}
		}
	}

	run := &Run{
		Total:      ds.Len(),
		failedRows: make(map[int]struct{}),
	}

	catalog := rules.Catalog()
	ctx := rules.NewContext()

	// Field-major iteration mirrors the reporting order; within a field,
	// records are visited in original order so the uniqueness rule's seen
	// state only ever reflects earlier positions.
	for _, field := range rules.FieldOrder() {
		var fieldRules []rules.Rule
		for _, rule := range catalog {
			if rule.Field == field {
				fieldRules = append(fieldRules, rule)
			}
		}

		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(field)

			var issues []rules.Issue
			for _, rule := range fieldRules {
				issues = append(issues, rule.Check(value, present, ctx)...)
			}
			if len(issues) > 0 {
				run.addFailure(i, field, issues)
			}
		}
	}

	return run, nil
}
