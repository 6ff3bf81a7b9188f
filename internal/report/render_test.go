package report

import (
	"strings"
	"testing"

	"github.com/tmcf/custaudit/internal/cleaning"
	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/pii"
	"github.com/tmcf/custaudit/internal/quality"
	"github.com/tmcf/custaudit/internal/rules"
	"github.com/tmcf/custaudit/internal/validation"
)

func TestValidationReport(t *testing.T) {
	res := validation.Result{
		TotalRecords: 10,
		PassCount:    7,
		FailedCount:  3,
		FieldFailures: []validation.FieldFailures{
			{
				Field: dataset.FieldEmail,
				Failures: []validation.Failure{
					{Row: 4, Field: dataset.FieldEmail, Issues: []rules.Issue{{Kind: rules.KindBadFormat, Text: "'nope' (invalid email format)"}}},
				},
			},
		},
		FieldCounts: []validation.FieldCount{
			{Field: dataset.FieldEmail, Valid: 9, Total: 10},
		},
		Severity: validation.Tally{Critical: 1, High: 4, Medium: 2},
	}

	out := Validation(res)

	for _, want := range []string{
		"VALIDATION RESULTS",
		"PASS: 7 rows passed all checks",
		"FAIL: 3 rows failed",
		"email:",
		"  - Row 4: 'nope' (invalid email format)",
		"- email: 9/10 valid",
		"- Critical (blocks processing): 1",
		"- High (data incorrect): 4",
		"- Medium (needs cleaning): 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestQualityReport(t *testing.T) {
	ds := dataset.New(dataset.CanonicalFields(), []dataset.Record{
		{
			dataset.FieldCustomerID:    "1",
			dataset.FieldFirstName:     "John",
			dataset.FieldLastName:      "Smith",
			dataset.FieldEmail:         "john@example.com",
			dataset.FieldPhone:         "555-123-4567",
			dataset.FieldDateOfBirth:   "1985-03-15",
			dataset.FieldAddress:       "123 Main Street, Springfield",
			dataset.FieldIncome:        "55000",
			dataset.FieldAccountStatus: "pending",
			dataset.FieldCreatedDate:   "2023-06-01",
		},
	})

	out := Quality(quality.Analyze(ds, 2024))

	for _, want := range []string{
		"DATA QUALITY PROFILE REPORT",
		"COMPLETENESS:",
		"- customer_id: 100.0%",
		"DATA TYPES:",
		"Phone formats found: XXX-XXX-XXXX",
		"- customer_id: 1/1 unique",
		"All IDs are unique",
		"'pending' (invalid value)",
		"Reference year for age checks: 2024",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestCleaningLogReport(t *testing.T) {
	log := &cleaning.Log{
		PhoneChanges: 3,
		DateChanges:  2,
		NameChanges:  5,
		Fills: []cleaning.FieldFill{
			{Field: dataset.FieldFirstName, Count: 2, Value: "[UNKNOWN]"},
		},
		TotalRecords: 12,
		TotalFields:  10,
	}

	out := CleaningLog(log)

	for _, want := range []string{
		"DATA CLEANING LOG",
		"Phone format: Normalized 3 rows to XXX-XXX-XXXX",
		"Date format: Converted 2 dates to YYYY-MM-DD",
		"Name case: Applied title case to 5 names",
		"- first_name: 2 rows filled with '[UNKNOWN]'",
		"Output: 12 rows, 10 columns",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPIIReport(t *testing.T) {
	r := &pii.Report{
		TotalRecords: 2,
		Emails:       []pii.Finding{{Row: 2, Value: "john@example.com"}},
		Names:        []pii.NameFinding{{Row: 2, FirstName: "John", LastName: "Smith"}},
	}

	out := PII(r)

	for _, want := range []string{
		"PII DETECTION REPORT",
		"- emails found: 1 (50.0%)",
		"- names found: 1 (50.0%)",
		"   - Row 2: john@example.com",
		"   - Row 2: John Smith",
		"MITIGATION: Mask all PII before sharing with analytics teams",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestMaskedSampleReport(t *testing.T) {
	original := dataset.New([]string{"first_name", "income"}, []dataset.Record{
		{"first_name": "John", "income": "55000"},
	})
	masked := pii.Mask(original)

	out := MaskedSample(original, masked, 3)

	for _, want := range []string{
		"BEFORE MASKING",
		"AFTER MASKING",
		"John, 55000",
		"J***, 55000",
		"Data structure preserved (1 rows, 2 columns)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
