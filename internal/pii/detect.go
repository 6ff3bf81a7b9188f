// Package pii scans a customer dataset for personally identifiable
// information and provides masking transforms for safe downstream sharing. It
// consumes the same tabular input as the validation engine but is independent
// of it.
package pii

import (
	"math"
	"regexp"
	"strings"

	"github.com/tmcf/custaudit/internal/dataset"
)

// Finding ties a detected PII value to its input line number.
type Finding struct {
	Row   int    `json:"row"`
	Value string `json:"value"`
}

// NameFinding holds the name parts detected on one record.
type NameFinding struct {
	Row       int    `json:"row"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// CategoryStat summarizes one PII category's exposure.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
	Risk     string  `json:"risk"`
}

// Report is the structured PII detection payload.
type Report struct {
	TotalRecords int           `json:"totalRecords"`
	Emails       []Finding     `json:"emails"`
	Phones       []Finding     `json:"phones"`
	Names        []NameFinding `json:"names"`
	Addresses    []Finding     `json:"addresses"`
	BirthDates   []Finding     `json:"birthDates"`
}

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`^\d{10}$`),
		regexp.MustCompile(`^\d{3}[-.]\d{3}[-.]\d{4}$`),
	}
)

// Detect scans every record for PII by category.
func Detect(ds *dataset.Dataset) *Report {
	report := &Report{TotalRecords: ds.Len()}

	for i := 0; i < ds.Len(); i++ {
		rec := ds.Record(i)
		row := dataset.RowNumber(i)

		if value, ok := rec.Value(dataset.FieldEmail); ok && emailPattern.MatchString(value) {
			report.Emails = append(report.Emails, Finding{Row: row, Value: value})
		}

		if value, ok := rec.Value(dataset.FieldPhone); ok {
			for _, pattern := range phonePatterns {
				if pattern.MatchString(value) {
					report.Phones = append(report.Phones, Finding{Row: row, Value: value})
					break
				}
			}
		}

		first, hasFirst := rec.Value(dataset.FieldFirstName)
		last, hasLast := rec.Value(dataset.FieldLastName)
		if hasFirst || hasLast {
			report.Names = append(report.Names, NameFinding{Row: row, FirstName: first, LastName: last})
		}

		if value, ok := rec.Value(dataset.FieldAddress); ok {
			report.Addresses = append(report.Addresses, Finding{Row: row, Value: value})
		}

		if value, ok := rec.Value(dataset.FieldDateOfBirth); ok && strings.ToLower(value) != "invalid_date" {
			report.BirthDates = append(report.BirthDates, Finding{Row: row, Value: value})
		}
	}

	return report
}

// Stats returns per-category exposure counts and risk notes.
func (r *Report) Stats() []CategoryStat {
	percent := func(count int) float64 {
		if r.TotalRecords == 0 {
			return 0
		}
		return math.Round(float64(count)/float64(r.TotalRecords)*1000) / 10
	}
	return []CategoryStat{
		{Category: "emails", Count: len(r.Emails), Percent: percent(len(r.Emails)), Risk: "HIGH - Can be used for phishing and spam"},
		{Category: "phones", Count: len(r.Phones), Percent: percent(len(r.Phones)), Risk: "HIGH - Can be used for social engineering and fraud"},
		{Category: "names", Count: len(r.Names), Percent: percent(len(r.Names)), Risk: "HIGH - Enables identity spoofing"},
		{Category: "addresses", Count: len(r.Addresses), Percent: percent(len(r.Addresses)), Risk: "HIGH - Physical location exposure"},
		{Category: "birth_dates", Count: len(r.BirthDates), Percent: percent(len(r.BirthDates)), Risk: "HIGH - Used for identity verification bypass"},
	}
}
