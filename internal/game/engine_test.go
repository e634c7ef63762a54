package game

import (
	"errors"
	"image/color"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := DefaultSettings()
	cfg.Spawn.EnemySpawnRate = 0
	cfg.Spawn.PowerUpChance = 0
	base := []Option{WithRandSeed(1), WithClock(clock.Now)}
	e, err := New(cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, clock
}

func placeEnemy(e *Engine, k EnemyKind, x, y float64) {
	e.nextID++
	e.world.Enemies = append(e.world.Enemies, newEnemy(e.nextID, k, x, y))
}

func TestNew_InitialState(t *testing.T) {
	e, _ := newTestEngine(t)
	snap := e.Snapshot()

	if snap.Phase != PhasePlaying || snap.GameOver || snap.IsPaused {
		t.Fatalf("fresh engine should be playing, got %s", snap.Phase)
	}
	p := snap.Player
	if p.X != 375 || p.Y != 500 || p.W != 50 || p.H != 30 {
		t.Fatalf("player rect = %+v, want (375,500) 50x30", p.Rect)
	}
	if p.Lives != 3 || p.Score != 0 {
		t.Fatalf("lives=%d score=%d, want 3 and 0", p.Lives, p.Score)
	}
	if len(snap.Stars) != 100 {
		t.Fatalf("stars = %d, want 100", len(snap.Stars))
	}
	for _, s := range snap.Stars {
		if s.Size < 1 || s.Size > 3 || s.Speed < 0.1 || s.Speed > 0.6 {
			t.Fatalf("star outside configured ranges: %+v", s)
		}
	}
	if snap.SessionID == "" {
		t.Fatal("session id should be assigned")
	}
}

func TestWithRandSeed_Reproducible(t *testing.T) {
	build := func(seed int64) Snapshot {
		e, err := New(DefaultSettings(), WithRandSeed(seed))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := 0; i < 200; i++ {
			e.Tick()
		}
		return e.Snapshot()
	}

	a, b := build(7), build(7)
	if len(a.Stars) != len(b.Stars) || len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("same seed diverged: %d/%d stars, %d/%d enemies", len(a.Stars), len(b.Stars), len(a.Enemies), len(b.Enemies))
	}
	for i := range a.Stars {
		if a.Stars[i] != b.Stars[i] {
			t.Fatalf("star %d differs: %+v vs %+v", i, a.Stars[i], b.Stars[i])
		}
	}
	for i := range a.Enemies {
		if a.Enemies[i].Rect != b.Enemies[i].Rect || a.Enemies[i].Kind != b.Enemies[i].Kind {
			t.Fatalf("enemy %d differs: %+v vs %+v", i, a.Enemies[i], b.Enemies[i])
		}
	}

	c := build(8)
	same := true
	for i := range a.Stars {
		if a.Stars[i] != c.Stars[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should lay out different star fields")
	}
}

func TestInit_RejectsBoardSmallerThanPlayer(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 600},
		{"negative height", 800, -1},
		{"narrower than craft", 40, 600},
		{"shorter than craft", 800, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSettings()
			cfg.Board.Width, cfg.Board.Height = tc.w, tc.h
			_, err := New(cfg, WithRandSeed(1))
			if err == nil {
				t.Fatal("expected an error")
			}
			var ie *InitializationError
			if !errors.As(err, &ie) {
				t.Fatalf("error %v is not an InitializationError", err)
			}
			if !errors.Is(err, ErrInvalidBoard) {
				t.Fatalf("error %v should wrap ErrInvalidBoard", err)
			}
			if ie.Width != tc.w || ie.Height != tc.h {
				t.Fatalf("error reports %dx%d", ie.Width, ie.Height)
			}
		})
	}
}

func TestInit_FailureLeavesEngineInert(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.Init(10, 10); err == nil {
		t.Fatal("expected an error for a 10x10 board")
	}
	if e.Tick() {
		t.Fatal("inert engine must not tick")
	}
	if e.Fire() {
		t.Fatal("inert engine must not fire")
	}
	if e.Reset() {
		t.Fatal("inert engine must not reset")
	}

	if err := e.Init(1024, 768); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	snap := e.Snapshot()
	if snap.Width != 1024 || snap.Player.X != 512-25 || snap.Player.Y != 668 {
		t.Fatalf("re-init did not rebuild the board: %+v", snap.Player.Rect)
	}
	if !e.Tick() {
		t.Fatal("engine should tick after a successful init")
	}
}

func TestNew_InvalidSettings(t *testing.T) {
	cfg := DefaultSettings()
	cfg.Player.StartLives = 0
	_, err := New(cfg)
	var ie *InitializationError
	if !errors.As(err, &ie) || !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("want an InitializationError wrapping ErrInvalidSettings, got %v", err)
	}
}

func TestFire_RateLimited(t *testing.T) {
	e, clock := newTestEngine(t)

	e.KeyDown(" ")
	if n := len(e.Snapshot().Player.Missiles); n != 1 {
		t.Fatalf("first press should fire once, got %d missiles", n)
	}
	m := e.Snapshot().Player.Missiles[0]
	if m.X != 375+25-2 || m.Y != 500 || m.H != 10 || m.Speed != 8 {
		t.Fatalf("unexpected missile %+v", m)
	}

	clock.Advance(100 * time.Millisecond)
	if e.Fire() {
		t.Fatal("fire 100ms after the last shot should be rejected")
	}
	clock.Advance(100 * time.Millisecond)
	if e.Fire() {
		t.Fatal("exactly one reload interval is not enough")
	}
	clock.Advance(50 * time.Millisecond)
	e.KeyDown("Spacebar")
	if n := len(e.Snapshot().Player.Missiles); n != 2 {
		t.Fatalf("legacy space identifier should fire, got %d missiles", n)
	}
}

func TestFire_PoweredVolley(t *testing.T) {
	e, clock := newTestEngine(t)
	e.world.Player.PowerUpActive = true
	e.world.Player.PowerUpFramesRemaining = 500

	if !e.Fire() {
		t.Fatal("first powered shot should fire")
	}
	ms := e.Snapshot().Player.Missiles
	if len(ms) != 3 {
		t.Fatalf("powered volley should launch 3 missiles, got %d", len(ms))
	}
	cyan := color.RGBA{R: 0, G: 255, B: 255, A: 255}
	want := []struct{ x, y float64 }{
		{375 + 25 - 2, 500},  // nose
		{375 + 10, 505},      // left wing
		{375 + 50 - 15, 505}, // right wing
	}
	for i, w := range want {
		m := ms[i]
		if m.X != w.x || m.Y != w.y || m.W != 4 || m.H != 15 || m.Speed != 10 || m.Color != cyan {
			t.Fatalf("missile %d = %+v, want (%.0f,%.0f) 4x15 speed 10", i, m, w.x, w.y)
		}
	}

	clock.Advance(150 * time.Millisecond)
	if e.Fire() {
		t.Fatal("powered shots share the 200ms reload")
	}
	clock.Advance(51 * time.Millisecond)
	if !e.Fire() {
		t.Fatal("fire after the reload interval should succeed")
	}
	if n := len(e.Snapshot().Player.Missiles); n != 6 {
		t.Fatalf("two volleys should leave 6 missiles, got %d", n)
	}
}

func TestPhase_PauseResume(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Tick()

	if !e.Pause() {
		t.Fatal("pause from playing should succeed")
	}
	if e.Pause() {
		t.Fatal("pause twice should be rejected")
	}
	if e.Tick() {
		t.Fatal("no ticks while paused")
	}
	if e.Fire() {
		t.Fatal("no firing while paused")
	}
	if e.Snapshot().Tick != 1 || !e.Snapshot().IsPaused {
		t.Fatalf("paused snapshot: tick=%d paused=%v", e.Snapshot().Tick, e.Snapshot().IsPaused)
	}
	if !e.Resume() || e.Phase() != PhasePlaying {
		t.Fatal("resume should return to playing")
	}
	if e.Resume() {
		t.Fatal("resume while playing should be rejected")
	}
	if !e.Tick() {
		t.Fatal("ticks run again after resume")
	}
}

func TestPhase_EndDetachesInput(t *testing.T) {
	e, _ := newTestEngine(t)
	e.KeyDown("ArrowLeft")

	if !e.End() {
		t.Fatal("end should succeed while playing")
	}
	if e.End() {
		t.Fatal("end twice should be rejected")
	}
	if e.Snapshot().Input.Held(KeyLeft) {
		t.Fatal("held keys are released on end")
	}
	e.KeyDown("ArrowRight")
	e.KeyDown(" ")
	snap := e.Snapshot()
	if snap.Input.Held(KeyRight) || len(snap.Player.Missiles) != 0 {
		t.Fatal("input after end must be ignored")
	}
	if e.Tick() || !snap.GameOver {
		t.Fatal("game over halts ticks")
	}
}

func TestReset_NewSessionKeepsStars(t *testing.T) {
	e, _ := newTestEngine(t)
	for i := 0; i < 30; i++ {
		e.Tick()
	}
	e.world.Player.Score = 120
	e.world.Player.Lives = 1
	placeEnemy(e, EnemyBoss, 100, 100)
	e.End()

	before := e.Snapshot()
	if !e.Reset() {
		t.Fatal("reset should succeed")
	}
	after := e.Snapshot()

	if after.SessionID == before.SessionID {
		t.Fatal("reset must issue a new session id")
	}
	if after.Phase != PhasePlaying || after.Tick != 0 {
		t.Fatalf("after reset: phase=%s tick=%d", after.Phase, after.Tick)
	}
	if after.Player.Score != 0 || after.Player.Lives != 3 || len(after.Enemies) != 0 {
		t.Fatalf("session state not restored: %+v", after.Player)
	}
	if len(after.Stars) != len(before.Stars) || after.Stars[0] != before.Stars[0] {
		t.Fatal("stars are cosmetic and survive a reset")
	}

	e.KeyDown("ArrowLeft")
	if !e.Snapshot().Input.Held(KeyLeft) {
		t.Fatal("input is reattached after reset")
	}
}

func TestKeyDown_UnknownIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, k := range []string{"Enter", "a", "", "arrowleft"} {
		e.KeyDown(k)
	}
	if n := len(e.Snapshot().Input); n != 0 {
		t.Fatalf("unknown keys should not be recorded, got %d", n)
	}
	e.KeyDown("ArrowUp")
	e.Tick()
	if y := e.Snapshot().Player.Y; y != 495 {
		t.Fatalf("ArrowUp should move the craft up by 5, y=%.1f", y)
	}
	e.KeyUp("ArrowUp")
	e.Tick()
	if y := e.Snapshot().Player.Y; y != 495 {
		t.Fatalf("released key should stop movement, y=%.1f", y)
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	e, _ := newTestEngine(t)
	placeEnemy(e, EnemyBasic, 100, 100)
	e.Fire()

	snap := e.Snapshot()
	snap.Enemies[0].X = 999
	snap.Player.Missiles[0].Y = -50
	snap.Stars[0].X = -1
	snap.Input[KeyLeft] = true

	again := e.Snapshot()
	if again.Enemies[0].X != 100 || again.Player.Missiles[0].Y != 500 {
		t.Fatal("mutating a snapshot leaked into the engine")
	}
	if again.Stars[0].X == -1 || again.Input.Held(KeyLeft) {
		t.Fatal("mutating a snapshot leaked into the engine")
	}
}

func TestSubscribe_NotifiedOnTickAndReset(t *testing.T) {
	e, _ := newTestEngine(t)
	var ticks []int
	e.Subscribe(func(s Snapshot) { ticks = append(ticks, s.Tick) })

	e.Tick()
	e.Tick()
	e.Pause()
	e.Tick() // skipped
	e.Reset()

	want := []int{1, 2, 0}
	if len(ticks) != len(want) {
		t.Fatalf("notifications at ticks %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("notifications at ticks %v, want %v", ticks, want)
		}
	}
}

func TestEngine_LogsStateTransitions(t *testing.T) {
	sl := NewSimLog(false)
	e, _ := newTestEngine(t, WithSimLog(sl))
	e.Pause()
	e.Resume()
	e.End()
	e.Reset()

	for _, key := range []string{"init", "pause", "resume", "end", "reset"} {
		if !sl.HasEntry("state", key, "") {
			t.Errorf("missing state/%s entry\n%s", key, sl.Format())
		}
	}
	if !sl.HasEntry("state", "end", "playing → game_over") {
		t.Errorf("end entry should name both phases\n%s", sl.Format())
	}
}
