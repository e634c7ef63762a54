package game

import (
	"fmt"
	"math/rand"
	"time"
)

// frameDuration is the simulated wall-clock length of one tick in TestSim.
const frameDuration = time.Second / 60

// TestSim is a headless harness used by tests and the headless report. It
// drives an Engine with deterministic randomness and a simulated clock that
// advances one frame per tick.
type TestSim struct {
	Engine   *Engine
	SimLog   *SimLog
	Reporter *SimReporter
	Clock    *FakeClock

	settings Settings
	rng      Rand
	verbose  bool
	starsSet bool
	stars    int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // board, seed and settings; applied first
	simOptEntity                      // entities; applied after Init
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithBoardSize sets the playfield dimensions.
func WithBoardSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings.Board.Width = w
		ts.settings.Board.Height = h
	}}
}

// WithSettings replaces the whole configuration. Apply it before other
// infrastructure options that tweak individual fields.
func WithSettings(s Settings) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings = s
	}}
}

// WithTuning edits the configuration in place.
func WithTuning(fn func(*Settings)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.settings)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithScript feeds the engine a fixed sequence of draws; see ScriptedRand.
// Stars draw from the same source at Init, so pair it with WithStars(0).
func WithScript(values ...float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = NewScriptedRand(values...)
	}}
}

// WithQuietField disables every spawn so only placed entities move.
func WithQuietField() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings.Spawn.EnemySpawnRate = 0
		ts.settings.Spawn.PowerUpChance = 0
	}}
}

// WithStars overrides the star count (0 keeps scripted draws clean).
func WithStars(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.starsSet = true
		ts.stars = n
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithPlayerAt moves the player's top-left corner.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		p := &ts.Engine.world.Player
		p.X, p.Y = x, y
	}}
}

// WithLives sets the player's remaining lives.
func WithLives(n int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Engine.world.Player.Lives = n
	}}
}

// WithEnemy places an enemy of kind k with its top-left corner at (x, y).
func WithEnemy(k EnemyKind, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.AddEnemy(k, x, y)
	}}
}

// WithPowerUp places a pickup of kind k at (x, y).
func WithPowerUp(k PowerUpKind, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.AddPowerUp(k, x, y)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (board, settings, seed, clock, verbose)
//  2. Engine construction
//  3. Entities
//
// It panics if the engine cannot be built; tests want a loud failure.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		settings: DefaultSettings(),
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		Clock:    NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Reporter: NewSimReporter(reportWindowTicks),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.starsSet {
		ts.settings.Stars.Count = ts.stars
	}

	ts.SimLog = NewSimLog(ts.verbose)
	eng, err := New(ts.settings,
		WithRand(ts.rng),
		WithClock(ts.Clock.Now),
		WithSimLog(ts.SimLog),
	)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Engine = eng

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// AddEnemy places an enemy directly into the field and returns its ID.
func (ts *TestSim) AddEnemy(k EnemyKind, x, y float64) int {
	e := ts.Engine
	e.nextID++
	e.world.Enemies = append(e.world.Enemies, newEnemy(e.nextID, k, x, y))
	return e.nextID
}

// AddPowerUp places a pickup directly into the field and returns its ID.
func (ts *TestSim) AddPowerUp(k PowerUpKind, x, y float64) int {
	e := ts.Engine
	pu := e.cfg.PowerUp
	e.nextID++
	e.world.PowerUps = append(e.world.PowerUps, PowerUp{
		Rect:  Rect{X: x, Y: y, W: pu.Width, H: pu.Height},
		ID:    e.nextID,
		Kind:  k,
		Speed: pu.Speed,
		Color: k.Color(),
	})
	return e.nextID
}

// Step advances the clock by one frame and runs one tick.
func (ts *TestSim) Step() bool {
	ts.Clock.Advance(frameDuration)
	ran := ts.Engine.Tick()
	if ran && ts.Engine.world.Tick%60 == 0 {
		ts.Reporter.Collect(ts.Engine.Snapshot())
	}
	return ran
}

// RunTicks runs n ticks, stopping early once the engine stops ticking.
// It returns the number of ticks that executed.
func (ts *TestSim) RunTicks(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !ts.Step() {
			break
		}
		ran++
	}
	return ran
}

// RunUntil steps until cond holds or maxTicks ticks have run. It reports
// whether cond was met.
func (ts *TestSim) RunUntil(maxTicks int, cond func(Snapshot) bool) bool {
	for i := 0; i < maxTicks; i++ {
		if cond(ts.Snapshot()) {
			return true
		}
		if !ts.Step() {
			break
		}
	}
	return cond(ts.Snapshot())
}

// Snapshot is shorthand for ts.Engine.Snapshot().
func (ts *TestSim) Snapshot() Snapshot { return ts.Engine.Snapshot() }

// CurrentTick returns the engine's tick counter.
func (ts *TestSim) CurrentTick() int { return ts.Engine.world.Tick }

// Report builds the run report for the current session.
func (ts *TestSim) Report() *RunReport { return BuildRunReport(ts.SimLog, ts.Snapshot()) }

// --- deterministic collaborators ---

// ScriptedRand returns its values in order. Once exhausted it returns 0.99,
// which spawns nothing under the default probability table.
type ScriptedRand struct {
	values []float64
	pos    int
}

// NewScriptedRand creates a scripted source.
func NewScriptedRand(values ...float64) *ScriptedRand {
	return &ScriptedRand{values: values}
}

// Float64 returns the next scripted value.
func (r *ScriptedRand) Float64() float64 {
	if r.pos >= len(r.values) {
		return 0.99
	}
	v := r.values[r.pos]
	r.pos++
	return v
}

// Push appends more values to the script.
func (r *ScriptedRand) Push(values ...float64) { r.values = append(r.values, values...) }

// Drawn is how many scripted values have been consumed.
func (r *ScriptedRand) Drawn() int { return r.pos }

// FakeClock is a manually advanced clock for the fire-rate gate.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts a clock at t.
func NewFakeClock(t time.Time) *FakeClock { return &FakeClock{now: t} }

// Now returns the current simulated time.
func (c *FakeClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
