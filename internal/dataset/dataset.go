package dataset

import "strings"

// Canonical field names for the customer dataset contract. The loader trims
// header whitespace; no other header normalization happens downstream.
const (
	FieldCustomerID    = "customer_id"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldDateOfBirth   = "date_of_birth"
	FieldAddress       = "address"
	FieldIncome        = "income"
	FieldAccountStatus = "account_status"
	FieldCreatedDate   = "created_date"
)

// CanonicalFields returns the customer dataset fields in reporting order.
func CanonicalFields() []string {
	return []string{
		FieldCustomerID,
		FieldFirstName,
		FieldLastName,
		FieldEmail,
		FieldPhone,
		FieldDateOfBirth,
		FieldAddress,
		FieldIncome,
		FieldAccountStatus,
		FieldCreatedDate,
	}
}

// Record is one row of the dataset, keyed by field name. Values are raw
// strings as loaded; an absent key and an all-whitespace value both count as
// missing.
type Record map[string]string

// Value returns the trimmed value for a field and whether the field holds a
// non-empty value.
func (r Record) Value(field string) (string, bool) {
	raw, ok := r[field]
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}

// Dataset is a fully materialized, ordered tabular dataset. It is never
// mutated during validation; transformations such as cleaning or masking
// operate on a clone.
type Dataset struct {
	fields  []string
	records []Record
}

// New builds a dataset from an ordered field list and records.
func New(fields []string, records []Record) *Dataset {
	return &Dataset{fields: fields, records: records}
}

// Fields returns the dataset's field names in declaration order.
func (d *Dataset) Fields() []string {
	return d.fields
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the record at index i.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// HasField reports whether the dataset schema carries the named field.
func (d *Dataset) HasField(name string) bool {
	for _, f := range d.fields {
		if f == name {
			return true
		}
	}
	return false
}

// RowNumber maps a record index to its 1-based original input line number.
// The header occupies line 1, so record 0 sits on line 2.
func RowNumber(idx int) int {
	return idx + 2
}

// MissingCounts tallies per-field missing values across every field in the
// schema, including fields no validation rule covers.
func (d *Dataset) MissingCounts() map[string]int {
	counts := make(map[string]int, len(d.fields))
	for _, field := range d.fields {
		counts[field] = 0
	}
	for _, rec := range d.records {
		for _, field := range d.fields {
			if _, present := rec.Value(field); !present {
				counts[field]++
			}
		}
	}
	return counts
}

// Clone returns a deep copy suitable for in-place transformation.
func (d *Dataset) Clone() *Dataset {
	fields := make([]string, len(d.fields))
	copy(fields, d.fields)
	records := make([]Record, len(d.records))
	for i, rec := range d.records {
		clone := make(Record, len(rec))
		for k, v := range rec {
			clone[k] = v
		}
		records[i] = clone
	}
	return &Dataset{fields: fields, records: records}
}

// Set overwrites a field value on the record at index i. Used by the cleaning
// and masking transforms, never by the validation engine.
func (d *Dataset) Set(i int, field, value string) {
	d.records[i][field] = value
}
