package validation

import "github.com/tmcf/custaudit/internal/rules"

// FieldFailures lists one field's failures in record order.
type FieldFailures struct {
	Field    string    `json:"field"`
	Failures []Failure `json:"failures"`
}

// FieldCount reports how many records hold a valid value for one field.
type FieldCount struct {
	Field string `json:"field"`
	Valid int    `json:"valid"`
	Total int    `json:"total"`
}

// Result is the complete structured payload handed to renderers. Renderers
// perform no further aggregation, only formatting.
type Result struct {
	TotalRecords  int             `json:"totalRecords"`
	PassCount     int             `json:"passCount"`
	FailedCount   int             `json:"failedCount"`
	FieldFailures []FieldFailures `json:"failuresByField"`
	FieldCounts   []FieldCount    `json:"fieldCounts"`
	Severity      Tally           `json:"severity"`
}

// Assemble packages a validation run and its severity tally into the report
// payload. Fields appear in catalog declaration order; failures within a
// field follow record order.
func Assemble(run *Run, tally Tally) Result {
	grouped := run.FailuresByField()

	result := Result{
		TotalRecords: run.Total,
		PassCount:    run.PassCount(),
		FailedCount:  run.FailedRecordCount(),
		Severity:     tally,
	}

	for _, field := range rules.FieldOrder() {
		failures := grouped[field]
		if len(failures) > 0 {
			result.FieldFailures = append(result.FieldFailures, FieldFailures{
				Field:    field,
				Failures: failures,
			})
		}
		result.FieldCounts = append(result.FieldCounts, FieldCount{
			Field: field,
			Valid: run.Total - len(failures),
			Total: run.Total,
		})
	}

	return result
}
