// Package entities defines the domain types tracked by reroll-stats.
package entities

import "time"

// ModuleID identifies this tracker in exported data and journal content.
const ModuleID = "reroll-stats"

// Outcome is the ruleset's qualitative degree-of-success label for a roll.
// It is independent of the numeric comparison between a reroll and its
// original roll; the two axes are accumulated on separate counters.
type Outcome string

// Outcome labels as delivered in the host's roll context.
const (
	OutcomeSuccess         Outcome = "success"
	OutcomeCriticalSuccess Outcome = "criticalSuccess"
	OutcomeFailure         Outcome = "failure"
	OutcomeCriticalFailure Outcome = "criticalFailure"
	OutcomeUnknown         Outcome = "unknown"
)

// Valid reports whether o is one of the known outcome labels.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeCriticalSuccess, OutcomeFailure, OutcomeCriticalFailure, OutcomeUnknown:
		return true
	}
	return false
}

// Comparison is the numeric relation of a reroll total to the stored
// original-roll baseline.
type Comparison string

// Comparison results.
const (
	ComparisonBetter  Comparison = "better"
	ComparisonWorse   Comparison = "worse"
	ComparisonSame    Comparison = "same"
	ComparisonUnknown Comparison = "unknown"
)

// Classification is the result of classifying one reroll: the numeric
// comparison against the baseline and the ruleset outcome label.
type Classification struct {
	Comparison Comparison
	Outcome    Outcome
}

// RollCounters holds the accumulated reroll statistics for one character.
//
// Invariant: BetterCount + WorseCount + SameCount == RerollCount at all
// times. SuccessCount/CritSuccessCount and CritFailCount track the outcome
// axis and are not mutually exclusive with the comparison counters.
type RollCounters struct {
	// OriginalRoll is the baseline total awaiting a reroll comparison.
	// Nil when no baseline is pending.
	OriginalRoll *int `json:"originalRoll"`

	RerollCount int `json:"rerollCount"`

	BetterCount int `json:"betterCount"`
	WorseCount  int `json:"worseCount"`
	SameCount   int `json:"sameCount"`

	SuccessCount     int `json:"successCount"`
	CritSuccessCount int `json:"critSuccessCount"`
	CritFailCount    int `json:"critFailCount"`
}

// NewRollCounters returns a zero-initialized counters record with no
// pending baseline.
func NewRollCounters() *RollCounters {
	return &RollCounters{}
}

// RecordBaseline stores the original-roll total. Any unconsumed prior
// baseline is overwritten: a reroll is only ever compared against the most
// recent original roll.
func (c *RollCounters) RecordBaseline(total int) {
	v := total
	c.OriginalRoll = &v
}

// ApplyReroll accumulates one classified reroll. Classifications with an
// unknown comparison are ignored entirely (no baseline existed when the
// reroll was classified). The baseline is deliberately NOT cleared: the
// BaselinePersists policy keeps it until the next original roll overwrites
// it. Returns true if any counter changed.
func (c *RollCounters) ApplyReroll(cls Classification) bool {
	switch cls.Comparison {
	case ComparisonBetter:
		c.BetterCount++
	case ComparisonWorse:
		c.WorseCount++
	case ComparisonSame:
		c.SameCount++
	default:
		return false
	}
	c.RerollCount++

	switch cls.Outcome {
	case OutcomeSuccess:
		c.SuccessCount++
	case OutcomeCriticalSuccess:
		c.CritSuccessCount++
	case OutcomeCriticalFailure:
		c.CritFailCount++
	}
	return true
}

// Reset zeroes every counter and clears the baseline. The character stays
// known to the store.
func (c *RollCounters) Reset() {
	*c = RollCounters{}
}

// Add accumulates other's counters into c. Baselines are not combined.
func (c *RollCounters) Add(other *RollCounters) {
	c.RerollCount += other.RerollCount
	c.BetterCount += other.BetterCount
	c.WorseCount += other.WorseCount
	c.SameCount += other.SameCount
	c.SuccessCount += other.SuccessCount
	c.CritSuccessCount += other.CritSuccessCount
	c.CritFailCount += other.CritFailCount
}

// Clone returns a deep copy of the counters record.
func (c *RollCounters) Clone() *RollCounters {
	out := *c
	if c.OriginalRoll != nil {
		v := *c.OriginalRoll
		out.OriginalRoll = &v
	}
	return &out
}

// RollData maps character IDs to their counters records.
type RollData map[string]*RollCounters

// Clone returns a deep copy of the mapping.
func (d RollData) Clone() RollData {
	out := make(RollData, len(d))
	for id, c := range d {
		out[id] = c.Clone()
	}
	return out
}

// WorldInfo identifies the world a backup was exported from.
type WorldInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SystemInfo identifies the game system the world runs.
type SystemInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// BackupEnvelope is the export format for backup/restore. Restore also
// accepts a bare RollData mapping.
type BackupEnvelope struct {
	ModuleID   string     `json:"moduleId"`
	ExportedAt time.Time  `json:"exportedAt"`
	World      WorldInfo  `json:"worldInfo"`
	System     SystemInfo `json:"systemInfo"`
	Data       RollData   `json:"data"`
}

// MigrationState records which one-shot schema migrations have completed.
// Serialized as {"critFailMigration":1} for compatibility with the
// original settings shape.
type MigrationState map[string]int

// Done reports whether the migration with the given id has completed.
func (s MigrationState) Done(id string) bool {
	return s[id] == 1
}

// MarkDone records the migration as completed. Never reset automatically.
func (s MigrationState) MarkDone(id string) {
	s[id] = 1
}
