package viewer

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// EventEntry is a single line in the on-screen event log.
type EventEntry struct {
	Tick    int
	Side    game.Side
	Match   bool // match-wide event with no side
	Message string
}

// EventLog is a ring buffer of match events rendered beside the field. It
// listens to the match as an Observer.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int

	lastPhase game.Phase
	lastQ     int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
		lastQ:   1,
	}
}

// Add appends an entry to the log.
func (el *EventLog) Add(e EventEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// TickCompleted implements game.Observer; it records phase changes.
func (el *EventLog) TickCompleted(s game.Snapshot) {
	if s.Phase != el.lastPhase {
		el.Add(EventEntry{Tick: s.Tick, Match: true, Message: fmt.Sprintf("%s → %s", el.lastPhase, s.Phase)})
		el.lastPhase = s.Phase
	}
	if s.Quarter != el.lastQ {
		el.Add(EventEntry{Tick: s.Tick, Match: true, Message: fmt.Sprintf("Q%d begins  %s", s.Quarter, s.Scoreline())})
		el.lastQ = s.Quarter
	}
}

// Scored implements game.Observer.
func (el *EventLog) Scored(e game.ScoreEvent) {
	word := "BEHIND"
	if e.Kind == game.ScoreGoal {
		word = "GOAL"
	}
	el.Add(EventEntry{Tick: e.Tick, Side: e.Side, Message: fmt.Sprintf("%s by %s", word, e.Unit)})
}

// Note records a viewer message such as a rejected command.
func (el *EventLog) Note(tick int, msg string) {
	el.Add(EventEntry{Tick: tick, Match: true, Message: msg})
}

// Draw renders the event log panel at panelX.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := el.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot := color.RGBA{R: 150, G: 150, B: 150, A: 255}
		if !e.Match {
			dot = sideColor(e.Side)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %s", e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
