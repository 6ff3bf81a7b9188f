// Package report renders the structured assessment payloads as plain text.
// Formatting only; every number comes pre-aggregated from the producing
// package.
package report

import (
	"fmt"
	"strings"

	"github.com/tmcf/custaudit/internal/cleaning"
	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/pii"
	"github.com/tmcf/custaudit/internal/quality"
	"github.com/tmcf/custaudit/internal/validation"
)

const (
	ruleWide   = "=================================================="
	ruleNarrow = "------------------------------"
)

// Validation renders the validation result report.
func Validation(res validation.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "VALIDATION RESULTS\n%s\n\n", ruleWide)
	fmt.Fprintf(&b, "PASS: %d rows passed all checks\n", res.PassCount)
	fmt.Fprintf(&b, "FAIL: %d rows failed\n\n", res.FailedCount)

	fmt.Fprintf(&b, "FAILURES BY COLUMN:\n%s\n\n", ruleNarrow)
	for _, ff := range res.FieldFailures {
		fmt.Fprintf(&b, "%s:\n", ff.Field)
		for _, failure := range ff.Failures {
			for _, text := range failure.IssueTexts() {
				fmt.Fprintf(&b, "  - Row %d: %s\n", failure.Row, text)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "VALIDATION SUMMARY:\n%s\n", ruleNarrow)
	for _, fc := range res.FieldCounts {
		fmt.Fprintf(&b, "- %s: %d/%d valid\n", fc.Field, fc.Valid, fc.Total)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "SEVERITY:\n")
	fmt.Fprintf(&b, "- Critical (blocks processing): %d\n", res.Severity.Critical)
	fmt.Fprintf(&b, "- High (data incorrect): %d\n", res.Severity.High)
	fmt.Fprintf(&b, "- Medium (needs cleaning): %d\n\n", res.Severity.Medium)

	b.WriteString(ruleWide + "\n")
	return b.String()
}

// Quality renders the data quality profile report.
func Quality(p *quality.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DATA QUALITY PROFILE REPORT\n%s\n\n", ruleWide)

	b.WriteString("COMPLETENESS:\n")
	for _, c := range p.Completeness {
		missing := ""
		if c.Missing > 0 {
			missing = fmt.Sprintf(" (%d missing)", c.Missing)
		}
		fmt.Fprintf(&b, "- %s: %.1f%%%s\n", c.Field, c.Percent, missing)
	}
	b.WriteString("\n")

	b.WriteString("DATA TYPES:\n")
	for _, t := range p.Types {
		mark := "OK"
		if !t.OK {
			mark = "X"
		}
		fmt.Fprintf(&b, "- %s: %s %s (expected: %s)\n", t.Field, t.Detected, mark, t.Expected)
	}
	b.WriteString("\n")

	b.WriteString("QUALITY ISSUES:\n")
	fmt.Fprintf(&b, "1. Format Inconsistencies:\n")
	fmt.Fprintf(&b, "   - Phone formats found: %s\n", strings.Join(p.PhoneFormats, ", "))
	if len(p.BirthDateIssues) > 0 {
		b.WriteString("   - Date of birth issues:\n")
		for _, note := range p.BirthDateIssues {
			fmt.Fprintf(&b, "     * Row %d: %s\n", note.Row, note.Note)
		}
	}
	if len(p.CreatedDateIssues) > 0 {
		b.WriteString("   - Created date issues:\n")
		for _, note := range p.CreatedDateIssues {
			fmt.Fprintf(&b, "     * Row %d: %s\n", note.Row, note.Note)
		}
	}
	b.WriteString("\n")

	b.WriteString("2. Uniqueness Issues:\n")
	fmt.Fprintf(&b, "   - customer_id: %d/%d unique\n", p.Uniqueness.Unique, p.Uniqueness.Total)
	if p.Uniqueness.Duplicates > 0 {
		fmt.Fprintf(&b, "   - Duplicate IDs found: %d\n", p.Uniqueness.Duplicates)
	} else {
		b.WriteString("   - All IDs are unique\n")
	}
	b.WriteString("\n")

	b.WriteString("3. Invalid Values:\n")
	if len(p.InvalidValues) > 0 {
		for _, note := range p.InvalidValues {
			fmt.Fprintf(&b, "   - Row %d: %s\n", note.Row, note.Note)
		}
	} else {
		b.WriteString("   - None found\n")
	}
	b.WriteString("\n")

	b.WriteString("4. Categorical Validity (account_status):\n")
	if len(p.CategoricalIssues) > 0 {
		for _, note := range p.CategoricalIssues {
			fmt.Fprintf(&b, "   - Row %d: %s\n", note.Row, note.Note)
		}
	} else {
		b.WriteString("   - All values valid\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Reference year for age checks: %d\n\n", p.ReferenceYear)
	b.WriteString(ruleWide + "\n")
	return b.String()
}

// CleaningLog renders the cleaning action log.
func CleaningLog(log *cleaning.Log) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DATA CLEANING LOG\n%s\n\n", ruleWide)

	fmt.Fprintf(&b, "ACTIONS TAKEN:\n%s\n", ruleNarrow)
	if log.PhoneChanges > 0 {
		fmt.Fprintf(&b, "Phone format: Normalized %d rows to XXX-XXX-XXXX\n", log.PhoneChanges)
	}
	if log.DateChanges > 0 {
		fmt.Fprintf(&b, "Date format: Converted %d dates to YYYY-MM-DD\n", log.DateChanges)
	}
	if log.NameChanges > 0 {
		fmt.Fprintf(&b, "Name case: Applied title case to %d names\n", log.NameChanges)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "MISSING VALUES:\n%s\n", ruleNarrow)
	if len(log.Fills) == 0 {
		b.WriteString("- No missing values to handle\n")
	}
	for _, fill := range log.Fills {
		fmt.Fprintf(&b, "- %s: %d rows filled with '%s'\n", fill.Field, fill.Count, fill.Value)
	}
	b.WriteString("\n")

	b.WriteString(ruleWide + "\n")
	fmt.Fprintf(&b, "Output: %d rows, %d columns\n", log.TotalRecords, log.TotalFields)
	return b.String()
}

// PII renders the PII detection report.
func PII(r *pii.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PII DETECTION REPORT\n%s\n\n", ruleWide)

	b.WriteString("RISK ASSESSMENT:\n")
	b.WriteString("- HIGH: Names, Emails, Phone Numbers, Addresses, Dates of Birth\n")
	b.WriteString("- MEDIUM: Income (financial sensitivity)\n\n")

	b.WriteString("DETECTED PII:\n")
	for _, stat := range r.Stats() {
		fmt.Fprintf(&b, "- %s found: %d (%.1f%%)\n", stat.Category, stat.Count, stat.Percent)
	}
	b.WriteString("\n")

	b.WriteString("DETAILED FINDINGS:\n\n")

	b.WriteString("1. EMAIL ADDRESSES:\n")
	for _, f := range r.Emails {
		fmt.Fprintf(&b, "   - Row %d: %s\n", f.Row, f.Value)
	}
	b.WriteString("\n2. PHONE NUMBERS:\n")
	for _, f := range r.Phones {
		fmt.Fprintf(&b, "   - Row %d: %s\n", f.Row, f.Value)
	}
	b.WriteString("\n3. NAMES:\n")
	for _, f := range r.Names {
		full := strings.TrimSpace(f.FirstName + " " + f.LastName)
		fmt.Fprintf(&b, "   - Row %d: %s\n", f.Row, full)
	}
	b.WriteString("\n4. ADDRESSES:\n")
	for _, f := range r.Addresses {
		fmt.Fprintf(&b, "   - Row %d: %s\n", f.Row, f.Value)
	}
	b.WriteString("\n5. DATES OF BIRTH:\n")
	for _, f := range r.BirthDates {
		fmt.Fprintf(&b, "   - Row %d: %s\n", f.Row, f.Value)
	}
	b.WriteString("\n")

	b.WriteString("MITIGATION: Mask all PII before sharing with analytics teams\n\n")
	b.WriteString(ruleWide + "\n")
	return b.String()
}

// MaskedSample renders a before/after comparison of the first n records.
func MaskedSample(original, masked *dataset.Dataset, n int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MASKED SAMPLE COMPARISON\n%s\n\n", ruleWide)

	writeSample := func(title string, ds *dataset.Dataset) {
		fmt.Fprintf(&b, "%s (first %d rows):\n%s\n", title, n, ruleNarrow)
		fields := ds.Fields()
		b.WriteString(strings.Join(fields, ", ") + "\n")
		limit := n
		if ds.Len() < limit {
			limit = ds.Len()
		}
		for i := 0; i < limit; i++ {
			values := make([]string, len(fields))
			for j, field := range fields {
				values[j], _ = ds.Record(i).Value(field)
			}
			b.WriteString(strings.Join(values, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	writeSample("BEFORE MASKING", original)
	writeSample("AFTER MASKING", masked)

	fmt.Fprintf(&b, "ANALYSIS:\n%s\n", ruleNarrow)
	fmt.Fprintf(&b, "- Data structure preserved (%d rows, %d columns)\n", original.Len(), len(original.Fields()))
	b.WriteString("- PII masked: names, emails, phones, addresses, DOBs hidden\n")
	b.WriteString("- Business data intact: income, account_status, dates available\n")
	return b.String()
}
