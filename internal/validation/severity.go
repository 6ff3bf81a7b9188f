package validation

import (
	"github.com/tmcf/custaudit/internal/dataset"
	"github.com/tmcf/custaudit/internal/rules"
)

// Tier ranks remediation priority. Identifier integrity defects block any
// row-level join downstream (critical); incorrect-but-present values are
// wrong but workable (high); absent-but-fillable values and soft categorical
// defects have safe defaults (medium).
type Tier int

const (
	TierCritical Tier = iota
	TierHigh
	TierMedium
)

// Tally is the critical/high/medium issue-count summary. Each underlying
// defect lands in exactly one counter. Recomputed per run, never persisted on
// its own.
type Tally struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// tierByKind is the fixed severity policy for value-level defects found by the
// rule catalog. Missing values are deliberately absent: they are counted once
// from the raw per-field missing counts, not from failures.
var tierByKind = map[rules.Kind]Tier{
	rules.KindDuplicateID:     TierCritical,
	rules.KindNotInteger:      TierHigh,
	rules.KindNotPositive:     TierHigh,
	rules.KindBadLength:       TierHigh,
	rules.KindBadFormat:       TierHigh,
	rules.KindDateSentinel:    TierHigh,
	rules.KindBadDateFormat:   TierHigh,
	rules.KindNotNumeric:      TierHigh,
	rules.KindNegativeValue:   TierHigh,
	rules.KindAboveMaximum:    TierHigh,
	rules.KindInvalidCategory: TierMedium,
}

// missingTier assigns the tier for a field's missing-value count. A missing
// identifier blocks processing; everything else has a safe fill-in default.
// Missing account statuses are the categorical-defect case and also land in
// medium, counted here exactly once.
func missingTier(field string) Tier {
	if field == dataset.FieldCustomerID {
		return TierCritical
	}
	return TierMedium
}

// ClassifierInput carries everything the severity policy consumes: the
// failure collection, raw per-field missing counts over every dataset field
// (administrative fields included), and the unrealistic-age count derived from
// the quality profile.
type ClassifierInput struct {
	Failures        []Failure
	MissingCounts   map[string]int
	UnrealisticAges int
}

// Classify applies the fixed severity policy. The policy is a product
// decision keyed on by downstream consumers; it is data here so it stays
// visible and independently verifiable.
func Classify(in ClassifierInput) Tally {
	var tally Tally

	bump := func(t Tier, n int) {
		switch t {
		case TierCritical:
			tally.Critical += n
		case TierHigh:
			tally.High += n
		case TierMedium:
			tally.Medium += n
		}
	}

	for _, failure := range in.Failures {
		for _, issue := range failure.Issues {
			tier, counted := tierByKind[issue.Kind]
			if !counted {
				continue
			}
			bump(tier, 1)
		}
	}

	for field, missing := range in.MissingCounts {
		if missing <= 0 {
			continue
		}
		bump(missingTier(field), missing)
	}

	// An age beyond plausibility is a present-but-wrong value.
	bump(TierHigh, in.UnrealisticAges)

	return tally
}
