// Package classifier implements the reroll outcome classification.
//
// A reroll is classified on two independent axes: the numeric comparison of
// its total against the stored original-roll baseline, and the ruleset's
// degree-of-success label. The axes do not always agree (a numerically
// higher reroll can still be labeled a failure against a hard DC) and are
// deliberately never reconciled.
package classifier

import (
	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

// Classify maps a baseline, a reroll total, and the ruleset outcome label
// to a classification. The comparison is computed strictly on the numeric
// totals. When original is nil there is no baseline to compare against:
// the comparison is unknown and the caller must not touch any counters.
//
// Classify is pure and total: any label, known or not, is passed through so
// the counter logic can decide which outcome counters apply.
func Classify(original *int, rerollTotal int, label entities.Outcome) entities.Classification {
	cls := entities.Classification{
		Comparison: entities.ComparisonUnknown,
		Outcome:    label,
	}
	if !label.Valid() {
		cls.Outcome = entities.OutcomeUnknown
	}
	if original == nil {
		return cls
	}

	switch {
	case rerollTotal > *original:
		cls.Comparison = entities.ComparisonBetter
	case rerollTotal < *original:
		cls.Comparison = entities.ComparisonWorse
	default:
		cls.Comparison = entities.ComparisonSame
	}
	return cls
}
