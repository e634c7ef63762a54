package game

import (
	"strings"
	"testing"
	"time"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.Snapshot()))
	if wr := ts.Reporter.WindowSummary(); wr != nil {
		t.Log(wr.Format())
	}
}

// --- Scenario: enemy falls through an empty field ---

func TestScenario_BasicEnemyFallsAndEscapes(t *testing.T) {
	t.Log("=== TestScenario_BasicEnemyFallsAndEscapes ===")
	t.Log("--- Setup: 800x600, player at (375,500), one basic enemy at (100,-30) ---")

	ts := NewTestSim(
		WithQuietField(),
		WithStars(0),
		WithPlayerAt(375, 500),
		WithEnemy(EnemyBasic, 100, -30),
	)

	ts.RunTicks(10)
	snap := ts.Snapshot()
	if len(snap.Enemies) != 1 || snap.Enemies[0].Y != 0 {
		dumpLog(t, ts)
		t.Fatalf("after 10 ticks enemy should be at y=0, got %+v", snap.Enemies)
	}

	// 200 more ticks take it to exactly the bottom edge, where it stays.
	ts.RunTicks(200)
	snap = ts.Snapshot()
	if len(snap.Enemies) != 1 || snap.Enemies[0].Y != 600 {
		t.Fatalf("at tick 210 enemy should sit at y=600, got %+v", snap.Enemies)
	}

	ts.Step()
	snap = ts.Snapshot()
	dumpSummary(t, ts)
	if len(snap.Enemies) != 0 {
		t.Fatalf("enemy past the bottom should be removed, got %+v", snap.Enemies)
	}
	if snap.Player.Score != 0 || snap.Player.Lives != 3 {
		t.Fatalf("an escape changes nothing: score=%d lives=%d", snap.Player.Score, snap.Player.Lives)
	}
	r := ts.Report()
	if r.Escapes[EnemyBasic] != 1 || r.TotalKills() != 0 {
		t.Fatalf("report should count one basic escape: %+v", r)
	}
}

// --- Scenario: last life ---

func TestScenario_LastLifeEndsGame(t *testing.T) {
	ts := NewTestSim(
		WithQuietField(),
		WithStars(0),
		WithLives(1),
		WithEnemy(EnemyBasic, 380, 495),
	)

	ts.Step()
	snap := ts.Snapshot()
	if snap.Player.Lives != 0 || !snap.GameOver {
		dumpLog(t, ts)
		t.Fatalf("lives=%d gameOver=%v, want 0 and true", snap.Player.Lives, snap.GameOver)
	}
	if snap.Player.Invincible {
		t.Fatal("no invincibility on the killing hit")
	}
	if !ts.SimLog.HasEntry("state", "game_over", "") {
		t.Fatal("expected a game_over event")
	}
	if ran := ts.RunTicks(5); ran != 0 {
		t.Fatalf("%d ticks ran after game over", ran)
	}
	if !ts.Report().GameOver {
		t.Fatal("report should show game over")
	}
}

// --- Scenario: life pickup at the cap ---

func TestScenario_LifePickupAtCap(t *testing.T) {
	ts := NewTestSim(
		WithQuietField(),
		WithStars(0),
		WithLives(5),
		WithPowerUp(PowerUpLife, 390, 495),
	)

	ts.Step()
	snap := ts.Snapshot()
	if snap.Player.Lives != 5 {
		t.Fatalf("lives = %d, want 5 (capped)", snap.Player.Lives)
	}
	if len(snap.PowerUps) != 0 {
		t.Fatal("the power-up is consumed even at the cap")
	}
	if ts.Report().Pickups[PowerUpLife] != 1 {
		t.Fatal("pickup should be reported")
	}
}

// --- Scenario: shooting down a boss ---

func TestScenario_BossNeedsTenHits(t *testing.T) {
	ts := NewTestSim(
		WithQuietField(),
		WithStars(0),
		// Left of centre: the boss drifts about 30px right while it falls.
		WithEnemy(EnemyBoss, 340, 100),
	)
	eng := ts.Engine

	// Step the clock past the reload before every shot: one missile per tick.
	killed := ts.RunUntil(600, func(s Snapshot) bool {
		if len(s.Enemies) == 0 {
			return true
		}
		ts.Clock.Advance(300 * time.Millisecond)
		eng.Fire()
		return false
	})
	if !killed {
		dumpLog(t, ts)
		t.Fatal("boss was never destroyed")
	}

	snap := ts.Snapshot()
	if snap.Player.Score != 100 {
		t.Fatalf("score = %d, want 100", snap.Player.Score)
	}
	if hits := ts.SimLog.CountCategory("combat", "hit"); hits != 10 {
		t.Fatalf("boss took %d hits, want 10", hits)
	}
	kill, ok := ts.SimLog.LastOf("combat", "kill")
	if !ok || kill.Value != "boss" || kill.NumVal != 100 {
		t.Fatalf("unexpected kill entry %+v", kill)
	}
}

// --- Scenario: timed weapon upgrade changes the shot pattern ---

func TestScenario_WeaponUpgradeVolleyThenExpiry(t *testing.T) {
	ts := NewTestSim(
		WithQuietField(),
		WithStars(0),
		WithTuning(func(s *Settings) { s.Timers.PowerUpFrames = 30 }),
		WithPowerUp(PowerUpWeapon, 390, 495),
	)
	ts.Step()

	if !ts.Engine.Fire() {
		t.Fatal("first shot should fire")
	}
	if n := len(ts.Snapshot().Player.Missiles); n != 3 {
		t.Fatalf("powered shot should be a volley of 3, got %d", n)
	}

	ts.RunTicks(40)
	if ts.Snapshot().Player.PowerUpActive {
		t.Fatal("power-up should have expired")
	}
	before := len(ts.Snapshot().Player.Missiles)
	if !ts.Engine.Fire() {
		t.Fatal("reload long elapsed, shot should fire")
	}
	if n := len(ts.Snapshot().Player.Missiles) - before; n != 1 {
		t.Fatalf("unpowered shot should be single, got %d", n)
	}
	if m := ts.Snapshot().Player.Missiles[before]; m.Speed != 8 || m.H != 10 {
		t.Fatalf("unpowered missile speed=%.0f height=%.0f, want 8 and 10", m.Speed, m.H)
	}
}

// --- Scenario: reset mid-game ---

func TestScenario_ResetStartsFreshReport(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithStars(10))
	ts.Engine.KeyDown(" ")
	ts.RunTicks(120)
	firstSession := ts.Snapshot().SessionID

	ts.Engine.Reset()
	ts.RunTicks(5)

	r := ts.Report()
	if r.SessionID == firstSession {
		t.Fatal("reset should start a new session")
	}
	if r.Volleys != 0 || r.Ticks != 5 {
		t.Fatalf("report should only cover the new session: %+v", r)
	}
	if !strings.Contains(r.Format(), r.SessionID) {
		t.Fatal("formatted report should name its session")
	}
}
