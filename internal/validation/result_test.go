package validation

import (
	"testing"

	"github.com/tmcf/custaudit/internal/dataset"
)

func TestAssembleOrdersFieldsByCatalog(t *testing.T) {
	bad := validRecord(2)
	bad[dataset.FieldPhone] = "123"
	bad[dataset.FieldEmail] = "nope"
	ds := buildDataset(validRecord(1), bad)

	run, err := Validate(ds)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}

	tally := Classify(ClassifierInput{Failures: run.Failures, MissingCounts: ds.MissingCounts()})
	result := Assemble(run, tally)

	if result.TotalRecords != 2 || result.PassCount != 1 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	if len(result.FieldFailures) != 2 {
		t.Fatalf("expected 2 failing fields, got %d", len(result.FieldFailures))
	}
	// Email precedes phone in the catalog.
	if result.FieldFailures[0].Field != dataset.FieldEmail || result.FieldFailures[1].Field != dataset.FieldPhone {
		t.Fatalf("unexpected field order: %s, %s", result.FieldFailures[0].Field, result.FieldFailures[1].Field)
	}

	if len(result.FieldCounts) != 10 {
		t.Fatalf("expected counts for all 10 validated fields, got %d", len(result.FieldCounts))
	}
	for _, fc := range result.FieldCounts {
		want := 2
		if fc.Field == dataset.FieldEmail || fc.Field == dataset.FieldPhone {
			want = 1
		}
		if fc.Valid != want || fc.Total != 2 {
			t.Fatalf("unexpected count for %s: %+v", fc.Field, fc)
		}
	}

	if result.Severity.High != 2 {
		t.Fatalf("expected 2 high severity issues, got %+v", result.Severity)
	}
}
