package validation

import (
	"testing"

	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/rules"
)

func failureWith(kind rules.Kind) Failure {
	return Failure{Row: 2, Field: "x", Issues: []rules.Issue{{Kind: kind, Text: "t"}}}
}

func TestClassifyDuplicateIDIsCritical(t *testing.T) {
	tally := Classify(ClassifierInput{
		Failures: []Failure{failureWith(rules.KindDuplicateID)},
	})
	if tally.Critical != 1 || tally.High != 0 || tally.Medium != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
}

func TestClassifyMissingIdentifierIsCritical(t *testing.T) {
	tally := Classify(ClassifierInput{
		MissingCounts: map[string]int{dataset.FieldCustomerID: 2},
	})
	if tally.Critical != 2 || tally.High != 0 || tally.Medium != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
}

func TestClassifyInvalidValuesAreHigh(t *testing.T) {
	kinds := []rules.Kind{
		rules.KindNotInteger,
		rules.KindNotPositive,
		rules.KindBadLength,
		rules.KindBadFormat,
		rules.KindDateSentinel,
		rules.KindBadDateFormat,
		rules.KindNotNumeric,
		rules.KindNegativeValue,
		rules.KindAboveMaximum,
	}
	var failures []Failure
	for _, kind := range kinds {
		failures = append(failures, failureWith(kind))
	}

	tally := Classify(ClassifierInput{Failures: failures})
	if tally.High != len(kinds) {
		t.Fatalf("expected %d high, got %+v", len(kinds), tally)
	}
	if tally.Critical != 0 || tally.Medium != 0 {
		t.Fatalf("high-tier kinds leaked into other tiers: %+v", tally)
	}
}

func TestClassifyMediumTier(t *testing.T) {
	tally := Classify(ClassifierInput{
		Failures: []Failure{failureWith(rules.KindInvalidCategory)},
		MissingCounts: map[string]int{
			dataset.FieldEmail:   3,
			dataset.FieldAddress: 1,
		},
	})
	if tally.Medium != 5 {
		t.Fatalf("expected 5 medium, got %+v", tally)
	}
}

func TestClassifyCountsMissingValuesOnce(t *testing.T) {
	// The income field is both missing twice and invalid once elsewhere.
	// Missing counts come only from the raw profile counts; KindMissing
	// issues in failures are never tallied a second time.
	failures := []Failure{
		{Row: 2, Field: dataset.FieldIncome, Issues: []rules.Issue{{Kind: rules.KindMissing, Text: "Empty (should be non-empty)"}}},
		{Row: 3, Field: dataset.FieldIncome, Issues: []rules.Issue{{Kind: rules.KindMissing, Text: "Empty (should be non-empty)"}}},
		{Row: 4, Field: dataset.FieldIncome, Issues: []rules.Issue{{Kind: rules.KindNegativeValue, Text: "-100 (should be non-negative)"}}},
	}

	tally := Classify(ClassifierInput{
		Failures:      failures,
		MissingCounts: map[string]int{dataset.FieldIncome: 2},
	})

	if tally.High != 1 {
		t.Fatalf("expected 1 high for the negative value, got %+v", tally)
	}
	if tally.Medium != 2 {
		t.Fatalf("expected 2 medium for the missing values, got %+v", tally)
	}
	if tally.Critical != 0 {
		t.Fatalf("unexpected critical count: %+v", tally)
	}
	if tally.Critical+tally.High+tally.Medium != 3 {
		t.Fatalf("each defect should land in exactly one tier: %+v", tally)
	}
}

func TestClassifyUnrealisticAgesAreHigh(t *testing.T) {
	tally := Classify(ClassifierInput{UnrealisticAges: 2})
	if tally.High != 2 || tally.Critical != 0 || tally.Medium != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
}

func TestClassifyMissingStatusLandsMediumOnce(t *testing.T) {
	// A missing account_status is both a missing value and a categorical
	// defect. It counts once, in medium, via the missing counts.
	failures := []Failure{
		{Row: 2, Field: dataset.FieldAccountStatus, Issues: []rules.Issue{{Kind: rules.KindMissing, Text: "Empty (should be one of: active, inactive, suspended)"}}},
	}
	tally := Classify(ClassifierInput{
		Failures:      failures,
		MissingCounts: map[string]int{dataset.FieldAccountStatus: 1},
	})
	if tally.Medium != 1 || tally.Critical != 0 || tally.High != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
}
