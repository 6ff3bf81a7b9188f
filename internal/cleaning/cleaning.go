// Package cleaning normalizes a raw customer dataset: canonical phone and
// date formats, title-cased names, and safe fill-ins for missing values. It is
// a collaborator of the validation engine, never invoked by it.
package cleaning

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tmcf/custaudit/internal/dataset"
)

const (
	unknownMarker      = "[UNKNOWN]"
	defaultBirthDate   = "1990-01-01"
	defaultCreatedDate = "2024-01-01"
	defaultIncome      = "0"
	defaultStatus      = "unknown"
)

var (
	nonDigits   = regexp.MustCompile(`\D`)
	dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006", "02/01/2006"}
)

// FieldFill records how many missing values of one field were filled and with
// what default.
type FieldFill struct {
	Field string `json:"field"`
	Count int    `json:"count"`
	Value string `json:"value"`
}

// Log tracks every transformation applied during one cleaning pass.
type Log struct {
	PhoneChanges int         `json:"phoneChanges"`
	DateChanges  int         `json:"dateChanges"`
	NameChanges  int         `json:"nameChanges"`
	Fills        []FieldFill `json:"fills"`
	TotalRecords int         `json:"totalRecords"`
	TotalFields  int         `json:"totalFields"`
}

// NormalizePhone formats a phone number as XXX-XXX-XXXX when it carries ten
// digits (or eleven with a leading country code 1); anything else passes
// through unchanged.
func NormalizePhone(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	digits := nonDigits.ReplaceAllString(trimmed, "")
	switch {
	case len(digits) == 10:
		return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("%s-%s-%s", digits[1:4], digits[4:7], digits[7:])
	}
	return trimmed
}

// NormalizeDate converts a date to ISO YYYY-MM-DD. The second return is false
// when the value is empty, the invalid_date sentinel, or unparseable.
func NormalizeDate(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.ToLower(trimmed) == "invalid_date" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.Format("2006-01-02"), true
		}
	}
	return "", false
}

// NormalizeName applies title case.
func NormalizeName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	// cases.Caser is stateful, so build one per call rather than sharing.
	return cases.Title(language.English).String(strings.ToLower(trimmed))
}

// Clean returns a cleaned copy of the dataset plus the action log. The input
// dataset is left untouched.
func Clean(ds *dataset.Dataset) (*dataset.Dataset, *Log) {
	out := ds.Clone()
	log := &Log{
		TotalRecords: out.Len(),
		TotalFields:  len(out.Fields()),
	}

	if out.HasField(dataset.FieldPhone) {
		for i := 0; i < out.Len(); i++ {
			original, present := out.Record(i).Value(dataset.FieldPhone)
			if !present {
				continue
			}
			normalized := NormalizePhone(original)
			if normalized != original {
				out.Set(i, dataset.FieldPhone, normalized)
				log.PhoneChanges++
			}
		}
	}

	log.DateChanges += normalizeDateField(out, dataset.FieldDateOfBirth, defaultBirthDate)
	log.DateChanges += normalizeDateField(out, dataset.FieldCreatedDate, defaultCreatedDate)

	for _, field := range []string{dataset.FieldFirstName, dataset.FieldLastName} {
		if !out.HasField(field) {
			continue
		}
		for i := 0; i < out.Len(); i++ {
			original, present := out.Record(i).Value(field)
			if !present {
				continue
			}
			normalized := NormalizeName(original)
			if normalized != original {
				out.Set(i, field, normalized)
				log.NameChanges++
			}
		}
	}

	fillMissing(out, log, dataset.FieldFirstName, unknownMarker)
	fillMissing(out, log, dataset.FieldLastName, unknownMarker)
	fillMissing(out, log, dataset.FieldAddress, unknownMarker)
	fillMissing(out, log, dataset.FieldIncome, defaultIncome)
	fillMissing(out, log, dataset.FieldAccountStatus, defaultStatus)

	return out, log
}

func normalizeDateField(ds *dataset.Dataset, field, fallback string) int {
	if !ds.HasField(field) {
		return 0
	}
	changes := 0
	for i := 0; i < ds.Len(); i++ {
		original, present := ds.Record(i).Value(field)
		if !present {
			continue
		}
		normalized, ok := NormalizeDate(original)
		if !ok {
			ds.Set(i, field, fallback)
			changes++
			continue
		}
		if normalized != original {
			ds.Set(i, field, normalized)
			changes++
		}
	}
	return changes
}

func fillMissing(ds *dataset.Dataset, log *Log, field, value string) {
	if !ds.HasField(field) {
		return
	}
	count := 0
	for i := 0; i < ds.Len(); i++ {
		if _, present := ds.Record(i).Value(field); !present {
			ds.Set(i, field, value)
			count++
		}
	}
	if count > 0 {
		log.Fills = append(log.Fills, FieldFill{Field: field, Count: count, Value: value})
	}
}
