// Package quality profiles a customer dataset: completeness, column typing,
// format inventories, identifier uniqueness, invalid values, and categorical
// validity. The profile supplies the severity classifier's missing counts and
// unrealistic-age count.
package quality

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tmcf/custaudit/internal/dataset"
)

// maxPlausibleAge bounds the birth-year sanity check.
const maxPlausibleAge = 150

// FieldCompleteness is one field's fill rate.
type FieldCompleteness struct {
	Field   string  `json:"field"`
	Percent float64 `json:"percent"`
	Missing int     `json:"missing"`
}

// FieldTypeCheck compares a column's detected type against the contract's
// expected type.
type FieldTypeCheck struct {
	Field    string `json:"field"`
	Detected string `json:"detected"`
	Expected string `json:"expected"`
	OK       bool   `json:"ok"`
}

// RowNote attaches a free-form observation to an input line number.
type RowNote struct {
	Row  int    `json:"row"`
	Note string `json:"note"`
}

// UniquenessStats summarizes identifier uniqueness across the dataset.
type UniquenessStats struct {
	Total      int `json:"total"`
	Unique     int `json:"unique"`
	Duplicates int `json:"duplicates"`
}

// Profile is the structured data-quality payload consumed by the renderer and
// the severity classifier.
type Profile struct {
	TotalRecords      int                 `json:"totalRecords"`
	Completeness      []FieldCompleteness `json:"completeness"`
	Types             []FieldTypeCheck    `json:"types"`
	PhoneFormats      []string            `json:"phoneFormats"`
	BirthDateIssues   []RowNote           `json:"birthDateIssues"`
	CreatedDateIssues []RowNote           `json:"createdDateIssues"`
	Uniqueness        UniquenessStats     `json:"uniqueness"`
	InvalidValues     []RowNote           `json:"invalidValues"`
	CategoricalIssues []RowNote           `json:"categoricalIssues"`
	ReferenceYear     int                 `json:"referenceYear"`

	unrealisticAges int
	missing         map[string]int
}

// Analyze profiles the dataset. referenceYear anchors the unrealistic-age
// check; pass 0 to use the current calendar year (pin it in config when
// run-over-run reproducibility matters).
func Analyze(ds *dataset.Dataset, referenceYear int) *Profile {
	if referenceYear == 0 {
		referenceYear = time.Now().Year()
	}

	p := &Profile{
		TotalRecords:  ds.Len(),
		ReferenceYear: referenceYear,
		missing:       ds.MissingCounts(),
	}

	p.analyzeCompleteness(ds)
	p.analyzeTypes(ds)
	p.analyzeFormats(ds)
	p.analyzeUniqueness(ds)
	p.analyzeInvalidValues(ds)
	p.analyzeCategoricalValidity(ds)

	return p
}

// MissingCounts returns the raw per-field missing counts, covering every
// field in the dataset schema.
func (p *Profile) MissingCounts() map[string]int {
	return p.missing
}

// UnrealisticAgeCount returns how many birth dates imply an age above the
// plausibility bound at the reference year.
func (p *Profile) UnrealisticAgeCount() int {
	return p.unrealisticAges
}

func (p *Profile) analyzeCompleteness(ds *dataset.Dataset) {
	total := ds.Len()
	for _, field := range ds.Fields() {
		missing := p.missing[field]
		percent := 100.0
		if total > 0 {
			percent = math.Round(float64(total-missing)/float64(total)*1000) / 10
		}
		p.Completeness = append(p.Completeness, FieldCompleteness{
			Field:   field,
			Percent: percent,
			Missing: missing,
		})
	}
}

func expectedType(field string) string {
	switch field {
	case dataset.FieldCustomerID:
		return "integer"
	case dataset.FieldIncome:
		return "numeric"
	case dataset.FieldDateOfBirth, dataset.FieldCreatedDate:
		return "date"
	default:
		return "string"
	}
}

func (p *Profile) analyzeTypes(ds *dataset.Dataset) {
	for _, field := range ds.Fields() {
		detected := detectColumnType(ds, field)
		expected := expectedType(field)
		ok := detected == expected
		// A numeric column may legitimately detect as integer.
		if expected == "numeric" && (detected == "integer" || detected == "numeric") {
			ok = true
		}
		p.Types = append(p.Types, FieldTypeCheck{
			Field:    field,
			Detected: detected,
			Expected: expected,
			OK:       ok,
		})
	}
}

// detectColumnType narrows a column to the most specific type every present
// value satisfies.
func detectColumnType(ds *dataset.Dataset, field string) string {
	isBool := true
	isInt := true
	isNumeric := true
	isDate := true
	hasValue := false

	for i := 0; i < ds.Len(); i++ {
		value, present := ds.Record(i).Value(field)
		if !present {
			continue
		}
		hasValue = true

		if !looksLikeBool(value) {
			isBool = false
		}
		if !looksLikeInt(value) {
			isInt = false
		}
		if !looksLikeNumeric(value) {
			isNumeric = false
		}
		if !looksLikeDate(value) {
			isDate = false
		}
	}

	switch {
	case !hasValue:
		return "string"
	case isBool:
		return "boolean"
	case isInt:
		return "integer"
	case isNumeric:
		return "numeric"
	case isDate:
		return "date"
	default:
		return "string"
	}
}

func looksLikeBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

func looksLikeInt(value string) bool {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	// Allow float representations that convert losslessly to int.
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return math.Mod(f, 1) == 0
	}
	return false
}

func looksLikeNumeric(value string) bool {
	_, err := decimal.NewFromString(value)
	return err == nil
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

func looksLikeDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func (p *Profile) analyzeFormats(ds *dataset.Dataset) {
	if ds.HasField(dataset.FieldPhone) {
		formats := make(map[string]struct{})
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(dataset.FieldPhone)
			if !present {
				continue
			}
			formats[classifyPhoneFormat(value)] = struct{}{}
		}
		for format := range formats {
			p.PhoneFormats = append(p.PhoneFormats, format)
		}
		sort.Strings(p.PhoneFormats)
	}

	if ds.HasField(dataset.FieldDateOfBirth) {
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(dataset.FieldDateOfBirth)
			if !present {
				continue
			}
			switch {
			case strings.ToLower(value) == "invalid_date":
				p.BirthDateIssues = append(p.BirthDateIssues, RowNote{Row: dataset.RowNumber(i), Note: "invalid_date"})
			case strings.Contains(value, "/"):
				p.BirthDateIssues = append(p.BirthDateIssues, RowNote{Row: dataset.RowNumber(i), Note: fmt.Sprintf("%s (slash-delimited format)", value)})
			}
		}
	}

	if ds.HasField(dataset.FieldCreatedDate) {
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(dataset.FieldCreatedDate)
			if !present {
				continue
			}
			switch {
			case strings.ToLower(value) == "invalid_date":
				p.CreatedDateIssues = append(p.CreatedDateIssues, RowNote{Row: dataset.RowNumber(i), Note: "invalid_date"})
			case strings.Contains(value, "/"):
				p.CreatedDateIssues = append(p.CreatedDateIssues, RowNote{Row: dataset.RowNumber(i), Note: fmt.Sprintf("%s (slash-delimited format)", value)})
			}
		}
	}
}

func classifyPhoneFormat(value string) string {
	digitsOnly := true
	for _, r := range value {
		if r < '0' || r > '9' {
			digitsOnly = false
			break
		}
	}
	switch {
	case strings.Contains(value, "(") && strings.Contains(value, ")"):
		return "(XXX) XXX-XXXX"
	case strings.Count(value, "-") == 2:
		return "XXX-XXX-XXXX"
	case strings.Contains(value, "."):
		return "XXX.XXX.XXXX"
	case digitsOnly && len(value) == 10:
		return "XXXXXXXXXX"
	default:
		return "OTHER"
	}
}

func (p *Profile) analyzeUniqueness(ds *dataset.Dataset) {
	if !ds.HasField(dataset.FieldCustomerID) {
		return
	}
	seen := make(map[string]struct{})
	total := 0
	for i := 0; i < ds.Len(); i++ {
		value, present := ds.Record(i).Value(dataset.FieldCustomerID)
		if !present {
			continue
		}
		total++
		seen[value] = struct{}{}
	}
	p.Uniqueness = UniquenessStats{
		Total:      total,
		Unique:     len(seen),
		Duplicates: total - len(seen),
	}
}

func (p *Profile) analyzeInvalidValues(ds *dataset.Dataset) {
	for _, field := range []string{dataset.FieldDateOfBirth, dataset.FieldCreatedDate} {
		if !ds.HasField(field) {
			continue
		}
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(field)
			if present && strings.ToLower(value) == "invalid_date" {
				p.InvalidValues = append(p.InvalidValues, RowNote{
					Row:  dataset.RowNumber(i),
					Note: fmt.Sprintf("%s = 'invalid_date'", field),
				})
			}
		}
	}

	if ds.HasField(dataset.FieldIncome) {
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(dataset.FieldIncome)
			if !present {
				continue
			}
			amount, err := decimal.NewFromString(value)
			if err == nil && amount.IsNegative() {
				p.InvalidValues = append(p.InvalidValues, RowNote{
					Row:  dataset.RowNumber(i),
					Note: fmt.Sprintf("income = %s (negative)", amount.String()),
				})
			}
		}
	}

	if ds.HasField(dataset.FieldDateOfBirth) {
		for i := 0; i < ds.Len(); i++ {
			value, present := ds.Record(i).Value(dataset.FieldDateOfBirth)
			if !present || strings.ToLower(value) == "invalid_date" {
				continue
			}
			year, ok := birthYear(value)
			if !ok {
				continue
			}
			age := p.ReferenceYear - year
			if age > maxPlausibleAge {
				p.unrealisticAges++
				p.InvalidValues = append(p.InvalidValues, RowNote{
					Row:  dataset.RowNumber(i),
					Note: fmt.Sprintf("age = %d (unrealistic)", age),
				})
			}
		}
	}
}

func birthYear(value string) (int, bool) {
	idx := strings.Index(value, "-")
	if idx <= 0 {
		return 0, false
	}
	year, err := strconv.Atoi(value[:idx])
	if err != nil {
		return 0, false
	}
	return year, true
}

func (p *Profile) analyzeCategoricalValidity(ds *dataset.Dataset) {
	if !ds.HasField(dataset.FieldAccountStatus) {
		return
	}
	valid := map[string]struct{}{"active": {}, "inactive": {}, "suspended": {}}
	for i := 0; i < ds.Len(); i++ {
		value, present := ds.Record(i).Value(dataset.FieldAccountStatus)
		if !present {
			p.CategoricalIssues = append(p.CategoricalIssues, RowNote{
				Row:  dataset.RowNumber(i),
				Note: "Empty (missing value)",
			})
			continue
		}
		if _, ok := valid[strings.ToLower(value)]; !ok {
			p.CategoricalIssues = append(p.CategoricalIssues, RowNote{
				Row:  dataset.RowNumber(i),
				Note: fmt.Sprintf("'%s' (invalid value)", value),
			})
		}
	}
}
