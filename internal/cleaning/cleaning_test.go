package cleaning

import (
	"testing"

	"github.com/tmcf/custaudit/internal/dataset"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "555-123-4567"},
		{"555.123.4567", "555-123-4567"},
		{"5551234567", "555-123-4567"},
		{"15551234567", "555-123-4567"},
		{"555-123-456", "555-123-456"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1985-03-15", "1985-03-15", true},
		{"1985/03/15", "1985-03-15", true},
		{"03/15/1985", "1985-03-15", true},
		{"invalid_date", "", false},
		{"INVALID_DATE", "", false},
		{"not a date", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeDate(%q) = %q,%v, want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john", "John"},
		{"SMITH", "Smith"},
		{"mary-jane", "Mary-Jane"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanLeavesInputUntouched(t *testing.T) {
	ds := dataset.New(dataset.CanonicalFields(), []dataset.Record{
		{
			dataset.FieldCustomerID: "1",
			dataset.FieldFirstName:  "john",
			dataset.FieldPhone:      "(555) 123-4567",
		},
	})

	cleaned, _ := Clean(ds)

	if v, _ := ds.Record(0).Value(dataset.FieldFirstName); v != "john" {
		t.Fatalf("input dataset was mutated: first_name = %q", v)
	}
	if v, _ := cleaned.Record(0).Value(dataset.FieldFirstName); v != "John" {
		t.Fatalf("expected title-cased name, got %q", v)
	}
	if v, _ := cleaned.Record(0).Value(dataset.FieldPhone); v != "555-123-4567" {
		t.Fatalf("expected normalized phone, got %q", v)
	}
}

func TestCleanFillsMissingValues(t *testing.T) {
	ds := dataset.New(dataset.CanonicalFields(), []dataset.Record{
		{dataset.FieldCustomerID: "1"},
		{dataset.FieldCustomerID: "2", dataset.FieldFirstName: "Jane"},
	})

	cleaned, log := Clean(ds)

	rec := cleaned.Record(0)
	expectations := map[string]string{
		dataset.FieldFirstName:     "[UNKNOWN]",
		dataset.FieldLastName:      "[UNKNOWN]",
		dataset.FieldAddress:       "[UNKNOWN]",
		dataset.FieldIncome:        "0",
		dataset.FieldAccountStatus: "unknown",
	}
	for field, want := range expectations {
		if got, _ := rec.Value(field); got != want {
			t.Fatalf("expected %s filled with %q, got %q", field, want, got)
		}
	}

	fills := make(map[string]FieldFill)
	for _, f := range log.Fills {
		fills[f.Field] = f
	}
	if fills[dataset.FieldFirstName].Count != 1 {
		t.Fatalf("expected 1 first_name fill, got %+v", fills[dataset.FieldFirstName])
	}
	if fills[dataset.FieldLastName].Count != 2 {
		t.Fatalf("expected 2 last_name fills, got %+v", fills[dataset.FieldLastName])
	}
}

func TestCleanReplacesUnparseableDatesWithDefaults(t *testing.T) {
	ds := dataset.New(dataset.CanonicalFields(), []dataset.Record{
		{
			dataset.FieldCustomerID:  "1",
			dataset.FieldDateOfBirth: "invalid_date",
			dataset.FieldCreatedDate: "not a date",
		},
		{
			dataset.FieldCustomerID:  "2",
			dataset.FieldDateOfBirth: "1990/05/20",
		},
	})

	cleaned, log := Clean(ds)

	if v, _ := cleaned.Record(0).Value(dataset.FieldDateOfBirth); v != "1990-01-01" {
		t.Fatalf("expected default birth date, got %q", v)
	}
	if v, _ := cleaned.Record(0).Value(dataset.FieldCreatedDate); v != "2024-01-01" {
		t.Fatalf("expected default created date, got %q", v)
	}
	if v, _ := cleaned.Record(1).Value(dataset.FieldDateOfBirth); v != "1990-05-20" {
		t.Fatalf("expected ISO birth date, got %q", v)
	}
	if log.DateChanges != 3 {
		t.Fatalf("expected 3 date changes, got %d", log.DateChanges)
	}
}
