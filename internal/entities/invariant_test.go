package entities_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

// Any interleaving of baselines and classified rerolls must keep the
// comparison counters summing to the reroll count, and counters must
// never decrease.
func TestCountersInvariantUnderRandomSequences(t *testing.T) {
	comparisons := []entities.Comparison{
		entities.ComparisonBetter,
		entities.ComparisonWorse,
		entities.ComparisonSame,
		entities.ComparisonUnknown,
	}
	outcomes := []entities.Outcome{
		entities.OutcomeSuccess,
		entities.OutcomeCriticalSuccess,
		entities.OutcomeFailure,
		entities.OutcomeCriticalFailure,
		entities.OutcomeUnknown,
	}

	rapid.Check(t, func(t *rapid.T) {
		c := entities.NewRollCounters()

		steps := rapid.IntRange(0, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "baseline") {
				c.RecordBaseline(rapid.IntRange(1, 40).Draw(t, "total"))
				continue
			}

			before := *c
			cls := entities.Classification{
				Comparison: rapid.SampledFrom(comparisons).Draw(t, "comparison"),
				Outcome:    rapid.SampledFrom(outcomes).Draw(t, "outcome"),
			}
			changed := c.ApplyReroll(cls)

			if c.BetterCount+c.WorseCount+c.SameCount != c.RerollCount {
				t.Fatalf("comparison counters %d+%d+%d do not sum to reroll count %d",
					c.BetterCount, c.WorseCount, c.SameCount, c.RerollCount)
			}
			if changed == (cls.Comparison == entities.ComparisonUnknown) {
				t.Fatalf("changed=%v for comparison %q", changed, cls.Comparison)
			}
			if c.RerollCount < before.RerollCount || c.BetterCount < before.BetterCount ||
				c.WorseCount < before.WorseCount || c.SameCount < before.SameCount ||
				c.SuccessCount < before.SuccessCount || c.CritSuccessCount < before.CritSuccessCount ||
				c.CritFailCount < before.CritFailCount {
				t.Fatalf("a counter decreased: before=%+v after=%+v", before, *c)
			}
		}
	})
}
