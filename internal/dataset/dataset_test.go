package dataset

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadCSVParsesHeaderAndRows(t *testing.T) {
	data := `customer_id,first_name,email
1,John,john@example.com
2,Jane,jane@example.com
`
	ds, err := Load("customers.csv", []byte(data))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ds.Len())
	}
	want := []string{"customer_id", "first_name", "email"}
	got := ds.Fields()
	if len(got) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	value, present := ds.Record(1).Value("first_name")
	if !present || value != "Jane" {
		t.Fatalf("expected Jane, got %q (present=%v)", value, present)
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	data := "\uFEFFcustomer_id,first_name\n1,John\n"
	ds, err := Load("customers.csv", []byte(data))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if !ds.HasField("customer_id") {
		t.Fatalf("expected customer_id field, got %v", ds.Fields())
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	_, err := Load("customers.json", []byte(`{}`))
	if err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValueTreatsWhitespaceAsMissing(t *testing.T) {
	rec := Record{"email": "   ", "phone": "555-123-4567"}

	if _, present := rec.Value("email"); present {
		t.Fatalf("whitespace value should be missing")
	}
	if _, present := rec.Value("address"); present {
		t.Fatalf("absent key should be missing")
	}
	value, present := rec.Value("phone")
	if !present || value != "555-123-4567" {
		t.Fatalf("expected phone value, got %q (present=%v)", value, present)
	}
}

func TestRowNumberSkipsHeaderLine(t *testing.T) {
	if got := RowNumber(0); got != 2 {
		t.Fatalf("expected first record on line 2, got %d", got)
	}
	if got := RowNumber(9); got != 11 {
		t.Fatalf("expected record 9 on line 11, got %d", got)
	}
}

func TestMissingCountsCoverAllFields(t *testing.T) {
	ds := New([]string{"customer_id", "email"}, []Record{
		{"customer_id": "1", "email": ""},
		{"customer_id": "", "email": "a@b.com"},
		{"customer_id": "3", "email": "   "},
	})

	counts := ds.MissingCounts()
	if counts["customer_id"] != 1 {
		t.Fatalf("expected 1 missing customer_id, got %d", counts["customer_id"])
	}
	if counts["email"] != 2 {
		t.Fatalf("expected 2 missing emails, got %d", counts["email"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ds := New([]string{"first_name"}, []Record{{"first_name": "john"}})
	clone := ds.Clone()
	clone.Set(0, "first_name", "John")

	original, _ := ds.Record(0).Value("first_name")
	if original != "john" {
		t.Fatalf("clone mutation leaked into original: %q", original)
	}
}

func TestWriteCSVRoundTrips(t *testing.T) {
	ds := New([]string{"customer_id", "first_name"}, []Record{
		{"customer_id": "1", "first_name": "John"},
		{"customer_id": "2"},
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	reloaded, err := Load("out.csv", buf.Bytes())
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 records after round trip, got %d", reloaded.Len())
	}
	if _, present := reloaded.Record(1).Value("first_name"); present {
		t.Fatalf("expected empty cell to stay missing")
	}
}
