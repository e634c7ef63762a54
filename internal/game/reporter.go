package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-pressure reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Run report ---

// RunReport summarises one session from its event log and final snapshot.
type RunReport struct {
	SessionID string
	Ticks     int
	Score     int
	Lives     int
	GameOver  bool

	Volleys     int
	Shots       int // missiles launched; a powered volley counts three
	Hits        int
	Kills       map[EnemyKind]int
	Escapes     map[EnemyKind]int
	LivesLost   int
	Pickups     map[PowerUpKind]int
	MissedDrops int
}

// Accuracy is hits per missile launched, 0 when nothing was fired.
func (r *RunReport) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// TotalKills sums kills over every kind.
func (r *RunReport) TotalKills() int {
	n := 0
	for _, c := range r.Kills {
		n += c
	}
	return n
}

// BuildRunReport tallies the events recorded for the snapshot's session.
// Only entries after the most recent reset or init are counted.
func BuildRunReport(sl *SimLog, snap Snapshot) *RunReport {
	r := &RunReport{
		SessionID: snap.SessionID,
		Ticks:     snap.Tick,
		Score:     snap.Player.Score,
		Lives:     snap.Player.Lives,
		GameOver:  snap.GameOver,
		Kills:     make(map[EnemyKind]int),
		Escapes:   make(map[EnemyKind]int),
		Pickups:   make(map[PowerUpKind]int),
	}

	entries := sl.Entries()
	start := 0
	for i, e := range entries {
		if e.Category == "state" && (e.Key == "reset" || e.Key == "init") {
			start = i + 1
		}
	}

	for _, e := range entries[start:] {
		switch e.Category {
		case "fire":
			r.Volleys++
			r.Shots += int(e.NumVal)
		case "combat":
			switch e.Key {
			case "hit":
				r.Hits++
			case "kill":
				r.Kills[enemyKindByName(e.Value)]++
			case "escaped":
				r.Escapes[enemyKindByName(e.Value)]++
			}
		case "player":
			if e.Key == "life_lost" {
				r.LivesLost++
			}
		case "pickup":
			switch e.Key {
			case "weapon":
				r.Pickups[PowerUpWeapon]++
			case "life":
				r.Pickups[PowerUpLife]++
			case "missed":
				r.MissedDrops++
			}
		}
	}
	return r
}

func enemyKindByName(name string) EnemyKind {
	for _, k := range EnemyKinds() {
		if k.String() == name {
			return k
		}
	}
	return EnemyBasic
}

// Format returns a human-readable multi-line report.
func (r *RunReport) Format() string {
	var sb strings.Builder
	status := "in progress"
	if r.GameOver {
		status = "game over"
	}
	fmt.Fprintf(&sb, "=== Sky Raid Run Report (%s) ===\n", status)
	fmt.Fprintf(&sb, "session: %s\n", r.SessionID)
	fmt.Fprintf(&sb, "ticks=%d  score=%d  lives=%d  lives_lost=%d\n", r.Ticks, r.Score, r.Lives, r.LivesLost)
	fmt.Fprintf(&sb, "volleys=%d  shots=%d  hits=%d  accuracy=%.2f\n", r.Volleys, r.Shots, r.Hits, r.Accuracy())

	sb.WriteString("\n--- Kills / Escapes ---\n")
	for _, k := range EnemyKinds() {
		fmt.Fprintf(&sb, "  %-7s kills=%-4d escapes=%d\n", k, r.Kills[k], r.Escapes[k])
	}

	sb.WriteString("\n--- Power-ups ---\n")
	for _, k := range PowerUpKinds() {
		fmt.Fprintf(&sb, "  %-7s picked=%d\n", k, r.Pickups[k])
	}
	fmt.Fprintf(&sb, "  missed=%d\n", r.MissedDrops)
	return sb.String()
}

// --- Pressure sampler ---

// PressureSample is one periodic reading of how crowded the field is.
type PressureSample struct {
	Tick       int
	Score      int
	Lives      int
	Enemies    int
	Bosses     int
	PowerUps   int
	Missiles   int
	Invincible bool
}

// WindowReport averages the samples inside the reporter's window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgEnemies    float64
	AvgMissiles   float64
	MaxEnemies    int
	BossPresence  float64 // fraction of samples with a boss on the field
	ScorePerTick  float64
	InvinciblePct float64
}

// SimReporter samples snapshots periodically and summarises a sliding window.
type SimReporter struct {
	history     []PressureSample
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect records one sample. Call it periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(snap Snapshot) {
	s := PressureSample{
		Tick:       snap.Tick,
		Score:      snap.Player.Score,
		Lives:      snap.Player.Lives,
		Enemies:    len(snap.Enemies),
		PowerUps:   len(snap.PowerUps),
		Missiles:   len(snap.Player.Missiles),
		Invincible: snap.Player.Invincible,
	}
	for _, e := range snap.Enemies {
		if e.Kind == EnemyBoss {
			s.Bosses++
		}
	}
	// A tick counter that went backwards means the session was reset.
	if n := len(r.history); n > 0 && r.history[n-1].Tick > s.Tick {
		r.history = r.history[:0]
	}
	r.history = append(r.history, s)
}

// Latest returns the newest sample, or nil.
func (r *SimReporter) Latest() *PressureSample {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected samples.
func (r *SimReporter) History() []PressureSample {
	return r.history
}

// WindowSummary averages samples within windowTicks of the newest one.
func (r *SimReporter) WindowSummary() *WindowReport {
	last := r.Latest()
	if last == nil {
		return nil
	}
	from := last.Tick - r.windowTicks
	var window []PressureSample
	for _, s := range r.history {
		if s.Tick >= from {
			window = append(window, s)
		}
	}

	wr := &WindowReport{
		FromTick:    window[0].Tick,
		ToTick:      last.Tick,
		SampleCount: len(window),
	}
	var bosses, invincible int
	for _, s := range window {
		wr.AvgEnemies += float64(s.Enemies)
		wr.AvgMissiles += float64(s.Missiles)
		if s.Enemies > wr.MaxEnemies {
			wr.MaxEnemies = s.Enemies
		}
		if s.Bosses > 0 {
			bosses++
		}
		if s.Invincible {
			invincible++
		}
	}
	n := float64(len(window))
	wr.AvgEnemies /= n
	wr.AvgMissiles /= n
	wr.BossPresence = float64(bosses) / n
	wr.InvinciblePct = 100 * float64(invincible) / n
	if span := last.Tick - window[0].Tick; span > 0 {
		wr.ScorePerTick = float64(last.Score-window[0].Score) / float64(span)
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Pressure Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  enemies: avg=%.1f max=%d (%s)\n", wr.AvgEnemies, wr.MaxEnemies, pressureLabel(wr.AvgEnemies))
	fmt.Fprintf(&sb, "  missiles in flight: avg=%.1f\n", wr.AvgMissiles)
	fmt.Fprintf(&sb, "  boss on field: %.0f%% of samples\n", 100*wr.BossPresence)
	fmt.Fprintf(&sb, "  score rate: %.2f/tick  invincible: %.0f%%\n", wr.ScorePerTick, wr.InvinciblePct)
	return sb.String()
}

func pressureLabel(avg float64) string {
	switch {
	case avg >= 8:
		return "swarmed"
	case avg >= 4:
		return "heavy"
	case avg >= 1.5:
		return "steady"
	default:
		return "quiet"
	}
}
