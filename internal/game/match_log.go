package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded event during a match.
type MatchLogEntry struct {
	Tick     int
	Unit     string // unit name, or "--" for match-wide events
	Side     string // "home", "away", or "--"
	Category string // state, score, phase, ball, deploy, clock
	Key      string // specific event name within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] f_home_2   score    goal            f_home_2 scores from the pocket
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-10s %-8s %-15s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// MatchLog collects structured match events. It is unbounded and
// machine-readable; the viewer keeps its own short ring for display.
type MatchLog struct {
	entries []MatchLogEntry
}

// NewMatchLog creates an empty log.
func NewMatchLog() *MatchLog {
	return &MatchLog{}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, unit, side, category, key, value string) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Unit:     unit,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
	})
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for one unit name.
func (ml *MatchLog) FilterUnit(name string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Unit == name {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// FirstTick returns the tick of the first entry matching category, key and
// value substring, or -1.
func (ml *MatchLog) FirstTick(category, key, contains string) int {
	for _, e := range ml.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
