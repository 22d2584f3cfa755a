package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

func TestApplyReroll(t *testing.T) {
	t.Run("better success increments both axes", func(t *testing.T) {
		c := entities.NewRollCounters()
		changed := c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonBetter,
			Outcome:    entities.OutcomeSuccess,
		})

		assert.True(t, changed)
		assert.Equal(t, 1, c.RerollCount)
		assert.Equal(t, 1, c.BetterCount)
		assert.Equal(t, 1, c.SuccessCount)
		assert.Equal(t, 0, c.WorseCount)
		assert.Equal(t, 0, c.CritSuccessCount)
	})

	t.Run("worse critical failure", func(t *testing.T) {
		c := entities.NewRollCounters()
		c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonWorse,
			Outcome:    entities.OutcomeCriticalFailure,
		})

		assert.Equal(t, 1, c.RerollCount)
		assert.Equal(t, 1, c.WorseCount)
		assert.Equal(t, 1, c.CritFailCount)
	})

	t.Run("plain failure touches no outcome counter", func(t *testing.T) {
		c := entities.NewRollCounters()
		c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonSame,
			Outcome:    entities.OutcomeFailure,
		})

		assert.Equal(t, 1, c.SameCount)
		assert.Equal(t, 0, c.SuccessCount)
		assert.Equal(t, 0, c.CritSuccessCount)
		assert.Equal(t, 0, c.CritFailCount)
	})

	t.Run("unknown comparison changes nothing", func(t *testing.T) {
		c := entities.NewRollCounters()
		changed := c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonUnknown,
			Outcome:    entities.OutcomeSuccess,
		})

		assert.False(t, changed)
		assert.Equal(t, &entities.RollCounters{}, c)
	})

	t.Run("comparison counters always sum to reroll count", func(t *testing.T) {
		c := entities.NewRollCounters()
		for _, cls := range []entities.Classification{
			{Comparison: entities.ComparisonBetter, Outcome: entities.OutcomeCriticalSuccess},
			{Comparison: entities.ComparisonWorse, Outcome: entities.OutcomeUnknown},
			{Comparison: entities.ComparisonSame, Outcome: entities.OutcomeFailure},
			{Comparison: entities.ComparisonBetter, Outcome: entities.OutcomeFailure},
			{Comparison: entities.ComparisonUnknown, Outcome: entities.OutcomeSuccess},
		} {
			c.ApplyReroll(cls)
		}

		assert.Equal(t, 4, c.RerollCount)
		assert.Equal(t, c.RerollCount, c.BetterCount+c.WorseCount+c.SameCount)
	})
}

func TestBaselineHandling(t *testing.T) {
	t.Run("baseline survives a reroll", func(t *testing.T) {
		c := entities.NewRollCounters()
		c.RecordBaseline(12)
		c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonBetter,
			Outcome:    entities.OutcomeSuccess,
		})

		require.NotNil(t, c.OriginalRoll)
		assert.Equal(t, 12, *c.OriginalRoll)
	})

	t.Run("next original overwrites the baseline", func(t *testing.T) {
		c := entities.NewRollCounters()
		c.RecordBaseline(12)
		c.RecordBaseline(7)

		require.NotNil(t, c.OriginalRoll)
		assert.Equal(t, 7, *c.OriginalRoll)
	})

	t.Run("reset clears counters and baseline", func(t *testing.T) {
		c := entities.NewRollCounters()
		c.RecordBaseline(15)
		c.ApplyReroll(entities.Classification{
			Comparison: entities.ComparisonWorse,
			Outcome:    entities.OutcomeCriticalFailure,
		})

		c.Reset()

		assert.Equal(t, &entities.RollCounters{}, c)
		assert.Nil(t, c.OriginalRoll)
	})
}

func TestAdd(t *testing.T) {
	a := &entities.RollCounters{RerollCount: 3, BetterCount: 2, WorseCount: 1, SuccessCount: 2}
	a.RecordBaseline(10)
	b := &entities.RollCounters{RerollCount: 2, WorseCount: 1, SameCount: 1, CritFailCount: 1}

	a.Add(b)

	assert.Equal(t, 5, a.RerollCount)
	assert.Equal(t, 2, a.BetterCount)
	assert.Equal(t, 2, a.WorseCount)
	assert.Equal(t, 1, a.SameCount)
	assert.Equal(t, 1, a.CritFailCount)
	// Baselines are per-character state, never aggregated.
	require.NotNil(t, a.OriginalRoll)
	assert.Equal(t, 10, *a.OriginalRoll)
}

func TestClone(t *testing.T) {
	c := entities.NewRollCounters()
	c.RecordBaseline(9)
	c.ApplyReroll(entities.Classification{
		Comparison: entities.ComparisonBetter,
		Outcome:    entities.OutcomeSuccess,
	})

	clone := c.Clone()
	clone.RecordBaseline(20)
	clone.RerollCount = 99

	assert.Equal(t, 9, *c.OriginalRoll)
	assert.Equal(t, 1, c.RerollCount)
	assert.Equal(t, 20, *clone.OriginalRoll)
}

func TestRollDataClone(t *testing.T) {
	data := entities.RollData{
		"actor-1": {RerollCount: 1, BetterCount: 1},
	}

	clone := data.Clone()
	clone["actor-1"].RerollCount = 5
	clone["actor-2"] = entities.NewRollCounters()

	assert.Equal(t, 1, data["actor-1"].RerollCount)
	assert.Len(t, data, 1)
}

func TestCountersJSONShape(t *testing.T) {
	// Field names must stay compatible with previously exported data.
	c := entities.NewRollCounters()
	c.RecordBaseline(11)
	c.CritFailCount = 2

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{
		"originalRoll", "rerollCount", "betterCount", "worseCount",
		"sameCount", "successCount", "critSuccessCount", "critFailCount",
	} {
		assert.Contains(t, fields, key)
	}
}

func TestMigrationState(t *testing.T) {
	state := entities.MigrationState{}

	assert.False(t, state.Done("critFailMigration"))

	state.MarkDone("critFailMigration")
	assert.True(t, state.Done("critFailMigration"))

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"critFailMigration":1}`, string(raw))
}
