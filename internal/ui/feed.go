package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/duck-hunt/internal/game"
)

const (
	feedMaxEntries = 4
	feedLineHeight = 16
	feedX          = 470
)

// FeedEntry is one line of the HUD feed.
type FeedEntry struct {
	Seconds float64
	Message string
	Color   color.Color
}

// Feed is a ring buffer of recent round events shown in the HUD band.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	seen    int // round log entries already consumed
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, dropping the oldest when full.
func (f *Feed) Add(seconds float64, msg string, c color.Color) {
	f.entries[f.head] = FeedEntry{Seconds: seconds, Message: msg, Color: c}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Sync consumes round log entries added since the last call.
func (f *Feed) Sync(rl *game.RoundLog) {
	entries := rl.Entries()
	if len(entries) < f.seen {
		f.seen = 0
	}
	for _, e := range entries[f.seen:] {
		msg, c, ok := feedLine(e)
		if ok {
			f.Add(e.Elapsed.Seconds(), msg, c)
		}
	}
	f.seen = len(entries)
}

func feedLine(e game.RoundLogEntry) (string, color.Color, bool) {
	switch e.Category + "/" + e.Key {
	case "round/start":
		return fmt.Sprintf("level %d, go!", int(e.Level)), color.White, true
	case "target/hit":
		return fmt.Sprintf("+1  (%s)", e.Value), color.RGBA{R: 120, G: 230, B: 120, A: 255}, true
	case "target/escape":
		return "duck escaped", color.RGBA{R: 230, G: 140, B: 90, A: 255}, true
	case "shot/late":
		return "too late", color.RGBA{R: 170, G: 170, B: 170, A: 255}, true
	case "round/end":
		return "time up", color.White, true
	}
	return "", nil, false
}

// Draw renders the feed inside the HUD band.
func (f *Feed) Draw(p game.Presenter) {
	y := float64(game.ScreenHeight-game.HUDHeight) + 20
	for _, e := range f.Recent() {
		p.DrawText(fmt.Sprintf("%5.1f %s", e.Seconds, e.Message), game.Point{X: feedX, Y: y}, e.Color)
		y += feedLineHeight
	}
}
