package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
)

// feedColors tints the marker dot by event category.
var feedColors = map[string]color.RGBA{
	"spawn":  {R: 120, G: 120, B: 140, A: 255},
	"combat": {R: 230, G: 90, B: 60, A: 255},
	"player": {R: 0, G: 149, B: 221, A: 255},
	"pickup": {R: 0, G: 220, B: 120, A: 255},
	"state":  {R: 240, G: 220, B: 80, A: 255},
}

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Subject  string
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent engine events rendered in a side panel.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Clear drops every entry.
func (f *EventFeed) Clear() {
	f.head, f.count = 0, 0
}

// feedEntry turns a log entry into a feed line. Shots and verbose position
// samples are too frequent to be useful and are dropped.
func feedEntry(e game.SimLogEntry) (FeedEntry, bool) {
	var msg string
	switch e.Category {
	case "fire":
		return FeedEntry{}, false
	case "player":
		switch e.Key {
		case "position":
			return FeedEntry{}, false
		case "life_lost":
			msg = fmt.Sprintf("rammed by %s, %d left", e.Value, int(e.NumVal))
		default:
			msg = e.Key
		}
	case "spawn":
		msg = fmt.Sprintf("%s %s at x=%.0f", e.Key, e.Value, e.NumVal)
	case "combat":
		switch e.Key {
		case "kill":
			msg = fmt.Sprintf("%s down +%d", e.Value, int(e.NumVal))
		case "hit":
			msg = fmt.Sprintf("hit %s (%d hp)", e.Value, int(e.NumVal))
		default:
			msg = fmt.Sprintf("%s %s", e.Value, e.Key)
		}
	case "pickup":
		if e.Key == "missed" {
			msg = fmt.Sprintf("%s drop missed", e.Value)
		} else {
			msg = fmt.Sprintf("picked up %s", e.Key)
		}
	default:
		msg = e.Key
		if e.Value != "" {
			msg += " " + e.Value
		}
	}
	return FeedEntry{Tick: e.Tick, Subject: e.Subject, Category: e.Category, Message: msg}, true
}

// Draw renders the feed panel at panelX, newest entries at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 50, B: 90, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlight = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 30, B: 48, A: 160}, false)
		}
		dot, ok := feedColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+5), 3, 5, dot, false)

		line := fmt.Sprintf("%5d %-4s %s", e.Tick, e.Subject, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-1)
		y += feedLineHeight
	}
}
