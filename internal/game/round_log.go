package game

import (
	"fmt"
	"strings"
	"time"
)

// RoundLogEntry is one recorded round event.
type RoundLogEntry struct {
	Elapsed  time.Duration // play time since round start, pauses excluded
	Level    Level
	Category string  // round, target, shot
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value
}

// String formats the entry as a fixed-width log line.
//
//	[T=12.350] L2 target   escape           (412,220)
func (e RoundLogEntry) String() string {
	return fmt.Sprintf("[T=%06.3f] %s %-8s %-16s %s",
		e.Elapsed.Seconds(), e.Level, e.Category, e.Key, e.Value)
}

// RoundLog collects structured events across rounds. It is unbounded and
// machine-readable; the HUD feed is the bounded on-screen counterpart.
type RoundLog struct {
	entries []RoundLogEntry
	verbose bool
}

// NewRoundLog creates a RoundLog. Verbose additionally records every spawn.
func NewRoundLog(verbose bool) *RoundLog {
	return &RoundLog{verbose: verbose}
}

// Add records a new entry.
func (rl *RoundLog) Add(elapsed time.Duration, level Level, category, key, value string, numVal float64) {
	if rl == nil {
		return
	}
	rl.entries = append(rl.entries, RoundLogEntry{
		Elapsed:  elapsed,
		Level:    level,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (rl *RoundLog) AddVerbose(elapsed time.Duration, level Level, category, key, value string, numVal float64) {
	if rl == nil || !rl.verbose {
		return
	}
	rl.Add(elapsed, level, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (rl *RoundLog) Entries() []RoundLogEntry {
	return rl.entries
}

// Reset drops every entry.
func (rl *RoundLog) Reset() {
	rl.entries = rl.entries[:0]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (rl *RoundLog) Filter(category, key string) []RoundLogEntry {
	var out []RoundLogEntry
	for _, e := range rl.entries {
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

// CountCategory returns how many entries match the given category and key.
func (rl *RoundLog) CountCategory(category, key string) int {
	return len(rl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (rl *RoundLog) LastOf(category, key string) (RoundLogEntry, bool) {
	entries := rl.Filter(category, key)
	if len(entries) == 0 {
		return RoundLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format renders the full log, one line per entry.
func (rl *RoundLog) Format() string {
	var sb strings.Builder
	for _, e := range rl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
