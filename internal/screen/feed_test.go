package screen

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

func TestEventFeed_RingBufferKeepsNewest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(FeedEntry{Tick: i, Message: fmt.Sprint(i)})
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("len = %d, want %d", len(got), feedMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("oldest T=%d newest T=%d", got[0].Tick, got[len(got)-1].Tick)
	}

	f.Clear()
	if len(f.Recent()) != 0 {
		t.Fatal("clear should empty the feed")
	}
}

func TestFeedEntry_FiltersAndFormats(t *testing.T) {
	cases := []struct {
		in   game.SimLogEntry
		keep bool
		msg  string
	}{
		{game.SimLogEntry{Category: "fire", Key: "volley"}, false, ""},
		{game.SimLogEntry{Category: "player", Key: "position"}, false, ""},
		{game.SimLogEntry{Category: "combat", Key: "kill", Value: "boss", NumVal: 100}, true, "boss down +100"},
		{game.SimLogEntry{Category: "combat", Key: "escaped", Value: "fast"}, true, "fast escaped"},
		{game.SimLogEntry{Category: "player", Key: "life_lost", Value: "basic", NumVal: 2}, true, "rammed by basic, 2 left"},
		{game.SimLogEntry{Category: "pickup", Key: "life"}, true, "picked up life"},
		{game.SimLogEntry{Category: "spawn", Key: "enemy", Value: "zigzag", NumVal: 412.4}, true, "enemy zigzag at x=412"},
		{game.SimLogEntry{Category: "state", Key: "pause", Value: "playing → paused"}, true, "pause playing → paused"},
	}
	for _, tc := range cases {
		got, ok := feedEntry(tc.in)
		if ok != tc.keep {
			t.Errorf("%s/%s kept=%v, want %v", tc.in.Category, tc.in.Key, ok, tc.keep)
			continue
		}
		if ok && got.Message != tc.msg {
			t.Errorf("%s/%s message %q, want %q", tc.in.Category, tc.in.Key, got.Message, tc.msg)
		}
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if fade(c, 1) != c {
		t.Fatal("alpha 1 leaves the colour unchanged")
	}
	if got := fade(c, 0.5); got != (color.RGBA{R: 100, G: 50, B: 25, A: 127}) {
		t.Fatalf("fade 0.5 = %v", got)
	}
	if got := fade(c, -1); got != (color.RGBA{}) {
		t.Fatalf("negative alpha should clamp to transparent, got %v", got)
	}
}
