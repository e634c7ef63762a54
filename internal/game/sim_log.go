package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded engine event.
type SimLogEntry struct {
	Tick     int
	Subject  string  // "P1", "E12", "U3", or "--" for global events
	Category string  // spawn, combat, player, pickup, fire, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E7   combat    kill             zigzag
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from an engine. It is unbounded and
// machine-readable; hosts that draw it keep their own ring buffer.
// A nil *SimLog discards everything.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick player positions
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, subject, category, key, value, numVal)
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int {
	if sl == nil {
		return 0
	}
	return len(sl.entries)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	if sl == nil {
		return nil
	}
	return sl.entries
}

// Since returns the entries recorded after the first n. Hosts poll it with
// the previous Len to stream new events.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if sl == nil || n >= len(sl.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return sl.entries[n:]
}

// matches reports whether e belongs to category and key and its value
// contains substr. Empty arguments match anything.
func (e SimLogEntry) matches(category, key, substr string) bool {
	return (category == "" || e.Category == category) &&
		(key == "" || e.Key == key) &&
		(substr == "" || strings.Contains(e.Value, substr))
}

// Filter returns the entries with the given category and key; empty
// strings match any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var hits []SimLogEntry
	for _, e := range sl.Entries() {
		if e.matches(category, key, "") {
			hits = append(hits, e)
		}
	}
	return hits
}

func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.Entries() {
		if e.matches(category, key, "") {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry for category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].matches(category, key, "") {
			return entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches category, key and a value
// substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.Entries() {
		if e.matches(category, key, valueSubstr) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one entry per line, for t.Log dumps.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.Entries() {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}

// Summary returns a short human-readable view of a snapshot.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s) ---\n", snap.Tick, snap.Phase)

	p := snap.Player
	fmt.Fprintf(&sb, "Player: %s  score=%d lives=%d missiles=%d\n",
		formatPos(p.X, p.Y), p.Score, p.Lives, len(p.Missiles))
	if p.Invincible {
		fmt.Fprintf(&sb, "  invincible: %d frames left\n", p.InvincibleFramesRemaining)
	}
	if p.PowerUpActive {
		fmt.Fprintf(&sb, "  weapon power-up: %d frames left\n", p.PowerUpFramesRemaining)
	}

	counts := map[EnemyKind]int{}
	for _, e := range snap.Enemies {
		counts[e.Kind]++
	}
	sb.WriteString("Enemies: ")
	if len(snap.Enemies) == 0 {
		sb.WriteString("none")
	}
	for _, k := range EnemyKinds() {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", k, n)
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Power-ups in field: %d\n", len(snap.PowerUps))
	fmt.Fprintf(&sb, "Events: kills=%d hits=%d lives_lost=%d pickups=%d\n",
		sl.CountCategory("combat", "kill"),
		sl.CountCategory("combat", "hit"),
		sl.CountCategory("player", "life_lost"),
		sl.CountCategory("pickup", "weapon")+sl.CountCategory("pickup", "life"))
	return sb.String()
}

func formatPos(x, y float64) string {
	return fmt.Sprintf("(%.1f,%.1f)", x, y)
}
