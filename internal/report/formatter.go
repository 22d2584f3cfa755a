// Package report renders reroll counters into percentage-annotated chat
// and journal fragments. Everything here is a pure function of its inputs.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
)

// Percentage is a rounded percentage that knows whether it is defined.
// Undefined when the character has no rerolls yet; rendering it never
// produces NaN or Infinity.
type Percentage struct {
	Valid bool
	Value int
}

// String renders the percentage, or "N/A" when undefined.
func (p Percentage) String() string {
	if !p.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", p.Value)
}

// Percentages holds the derived statistics for one counters record.
type Percentages struct {
	Better      Percentage
	Worse       Percentage
	Same        Percentage
	Success     Percentage
	CritSuccess Percentage
	CritFail    Percentage
}

// Summary is the formatter output: derived percentages plus the rendered
// HTML fragment.
type Summary struct {
	Percentages Percentages
	Rendered    string
}

func percent(part, total int) Percentage {
	if total == 0 {
		return Percentage{}
	}
	return Percentage{
		Valid: true,
		Value: int(math.Round(100 * float64(part) / float64(total))),
	}
}

// Derive computes the percentage statistics for one counters record.
func Derive(c *entities.RollCounters) Percentages {
	return Percentages{
		Better:      percent(c.BetterCount, c.RerollCount),
		Worse:       percent(c.WorseCount, c.RerollCount),
		Same:        percent(c.SameCount, c.RerollCount),
		Success:     percent(c.SuccessCount, c.RerollCount),
		CritSuccess: percent(c.CritSuccessCount, c.RerollCount),
		CritFail:    percent(c.CritFailCount, c.RerollCount),
	}
}

// ForActor renders one character's stats as a chat-ready fragment.
func ForActor(name string, c *entities.RollCounters) *Summary {
	p := Derive(c)

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Reroll Stats for %s</h2>\n", name)
	writeCounterList(&b, c, p)

	return &Summary{Percentages: p, Rendered: b.String()}
}

// Combined renders the aggregate stats across every tracked character.
func Combined(data entities.RollData) *Summary {
	totals := entities.NewRollCounters()
	for _, c := range data {
		totals.Add(c)
	}
	p := Derive(totals)

	var b strings.Builder
	b.WriteString("<h2>Reroll Stats Totals</h2>\n")
	writeCounterList(&b, totals, p)

	return &Summary{Percentages: p, Rendered: b.String()}
}

// Journal renders the full journal page body: one section per character,
// sorted by display name for stable output, followed by the totals
// section. names maps actor IDs to display names; actors without a name
// are skipped the way the original skipped deleted actors.
func Journal(names map[string]string, data entities.RollData) string {
	type row struct {
		name     string
		counters *entities.RollCounters
	}

	rows := make([]row, 0, len(data))
	for actorID, c := range data {
		name, ok := names[actorID]
		if !ok {
			continue
		}
		rows = append(rows, row{name: name, counters: c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	var b strings.Builder
	b.WriteString("<h1>Reroll Stats</h1>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", r.name)
		writeCounterList(&b, r.counters, Derive(r.counters))
	}
	b.WriteString(Combined(data).Rendered)

	return b.String()
}

func writeCounterList(b *strings.Builder, c *entities.RollCounters, p Percentages) {
	b.WriteString("<ul>\n")
	fmt.Fprintf(b, "    <li><strong>Reroll Count:</strong> %d</li>\n", c.RerollCount)
	fmt.Fprintf(b, "    <li><strong>Better Results:</strong> %d (%s)</li>\n", c.BetterCount, p.Better)
	fmt.Fprintf(b, "    <li><strong>Worse Results:</strong> %d (%s)</li>\n", c.WorseCount, p.Worse)
	fmt.Fprintf(b, "    <li><strong>Same Results:</strong> %d (%s)</li>\n", c.SameCount, p.Same)
	fmt.Fprintf(b, "    <li><strong>Success Percentage:</strong> %s</li>\n", p.Success)
	fmt.Fprintf(b, "    <li><strong>Critical Success Percentage:</strong> %s</li>\n", p.CritSuccess)
	fmt.Fprintf(b, "    <li><strong>Critical Failure Percentage:</strong> %s</li>\n", p.CritFail)
	b.WriteString("</ul>\n")
}
