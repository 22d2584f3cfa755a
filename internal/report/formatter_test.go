package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/report"
)

func TestDerive(t *testing.T) {
	t.Run("zero rerolls yields undefined percentages", func(t *testing.T) {
		p := report.Derive(entities.NewRollCounters())

		assert.False(t, p.Better.Valid)
		assert.False(t, p.Success.Valid)
		assert.Equal(t, "N/A", p.Better.String())
		assert.Equal(t, "N/A", p.CritFail.String())
	})

	t.Run("percentages are rounded", func(t *testing.T) {
		c := &entities.RollCounters{
			RerollCount: 3,
			BetterCount: 2,
			WorseCount:  1,
		}
		p := report.Derive(c)

		assert.Equal(t, "67%", p.Better.String())
		assert.Equal(t, "33%", p.Worse.String())
		assert.Equal(t, "0%", p.Same.String())
	})
}

func TestForActor(t *testing.T) {
	c := &entities.RollCounters{
		RerollCount:  2,
		BetterCount:  1,
		WorseCount:   1,
		SuccessCount: 1,
	}

	s := report.ForActor("Amiri", c)

	assert.Contains(t, s.Rendered, "<h2>Reroll Stats for Amiri</h2>")
	assert.Contains(t, s.Rendered, "<strong>Reroll Count:</strong> 2")
	assert.Contains(t, s.Rendered, "<strong>Better Results:</strong> 1 (50%)")
	assert.Contains(t, s.Rendered, "<strong>Success Percentage:</strong> 50%")
}

func TestForActorNeverRendersNaN(t *testing.T) {
	s := report.ForActor("Ezren", entities.NewRollCounters())

	assert.NotContains(t, s.Rendered, "NaN")
	assert.NotContains(t, s.Rendered, "Inf")
	assert.Contains(t, s.Rendered, "N/A")
}

func TestCombined(t *testing.T) {
	data := entities.RollData{
		"a": {RerollCount: 2, BetterCount: 2, SuccessCount: 1},
		"b": {RerollCount: 2, WorseCount: 1, SameCount: 1, CritFailCount: 1},
	}

	s := report.Combined(data)

	assert.Contains(t, s.Rendered, "<h2>Reroll Stats Totals</h2>")
	assert.Contains(t, s.Rendered, "<strong>Reroll Count:</strong> 4")
	assert.Equal(t, "50%", s.Percentages.Better.String())
	assert.Equal(t, "25%", s.Percentages.CritFail.String())
}

func TestJournal(t *testing.T) {
	data := entities.RollData{
		"id-z": {RerollCount: 1, BetterCount: 1},
		"id-a": {RerollCount: 1, WorseCount: 1},
		"gone": {RerollCount: 5, SameCount: 5},
	}
	names := map[string]string{
		"id-z": "Amiri",
		"id-a": "Zova",
	}

	html := report.Journal(names, data)

	// Sections sorted by display name, deleted actors skipped.
	amiri := strings.Index(html, "<h2>Amiri</h2>")
	zova := strings.Index(html, "<h2>Zova</h2>")
	assert.Greater(t, amiri, -1)
	assert.Greater(t, zova, amiri)
	assert.NotContains(t, html, "gone")

	// Totals still include the skipped actor's counters.
	assert.Contains(t, html, "<h2>Reroll Stats Totals</h2>")
	assert.Contains(t, html, "<strong>Reroll Count:</strong> 7")
}
