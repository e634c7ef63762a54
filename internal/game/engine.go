package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Engine is the composition root. It owns the world and advances it one
// Tick at a time; the host decides the cadence. Engine is not safe for
// concurrent use: the host serialises ticks, input and public operations.
type Engine struct {
	cfg   Settings
	world World

	rng   Rand
	clock func() time.Time
	log   *SimLog

	nextID   int
	lastFire time.Time
	session  string

	ready     bool // Init succeeded
	attached  bool // input listeners active
	listeners []func(Snapshot)
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithRand injects the randomness source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithRandSeed uses a deterministic math/rand source.
func WithRandSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithClock replaces time.Now for the fire-rate gate.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.clock = now }
}

// WithSimLog records engine events into sl.
func WithSimLog(sl *SimLog) Option {
	return func(e *Engine) { e.log = sl }
}

// New validates cfg and initialises an engine on cfg's board.
func New(cfg Settings, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:   cfg,
		clock: time.Now,
		log:   NewSimLog(false),
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitializationError{Op: "new engine", Width: cfg.Board.Width, Height: cfg.Board.Height, Err: err}
	}
	if err := e.Init(cfg.Board.Width, cfg.Board.Height); err != nil {
		return nil, err
	}
	return e, nil
}

// Init (re)builds the world on a board of the given size: fresh player,
// empty field, new star backdrop, Playing phase. On failure the engine is
// left inert.
func (e *Engine) Init(width, height int) error {
	p := e.cfg.Player
	if width <= 0 || height <= 0 || float64(width) < p.Width || float64(height) < p.Height {
		e.ready = false
		e.attached = false
		return &InitializationError{Op: "init", Width: width, Height: height, Err: ErrInvalidBoard}
	}

	e.world = World{
		Width:  float64(width),
		Height: float64(height),
		Input:  InputState{},
	}
	e.world.Stars = seedStars(e.rng, e.cfg.Stars, e.world.Width, e.world.Height)
	e.ready = true
	e.resetSession()
	e.record("--", "state", "init", fmt.Sprintf("%dx%d", width, height), 0)
	return nil
}

// resetSession restores every non-cosmetic part of the world to defaults.
func (e *Engine) resetSession() {
	p := e.cfg.Player
	w := &e.world
	w.Player = Player{
		Rect: Rect{
			X: w.Width/2 - p.Width/2,
			Y: w.Height - p.BottomOffset,
			W: p.Width,
			H: p.Height,
		},
		Color: p.Color.RGBA(),
		Lives: p.StartLives,
	}
	w.Player.X = clamp(w.Player.X, 0, w.Width-p.Width)
	w.Player.Y = clamp(w.Player.Y, 0, w.Height-p.Height)
	w.Enemies = nil
	w.PowerUps = nil
	w.Input.clear()
	w.Phase = PhasePlaying
	w.Tick = 0
	e.lastFire = time.Time{}
	e.attached = true
	e.session = uuid.NewString()
}

// Tick advances one frame: Movement, Spawn, Collision, Timers. It does
// nothing outside the Playing phase and reports whether it ran.
func (e *Engine) Tick() bool {
	if !e.ready || !e.world.Phase.Running() {
		return false
	}
	e.world.Tick++
	ctx := e.context()
	moveAll(ctx)
	spawnAll(ctx)
	resolveCollisions(ctx)
	decayTimers(ctx)

	e.notify()
	return true
}

func (e *Engine) context() *tickContext {
	return &tickContext{
		w:      &e.world,
		cfg:    &e.cfg,
		rng:    e.rng,
		log:    e.log,
		nextID: &e.nextID,
	}
}

// KeyDown records a pressed key. The fire key also attempts a shot.
// Unknown identifiers and input after End are ignored.
func (e *Engine) KeyDown(raw string) {
	k, ok := ParseKey(raw)
	if !ok || !e.attached {
		return
	}
	e.world.Input[k] = true
	if k == KeyFire {
		e.Fire()
	}
}

// KeyUp records a released key.
func (e *Engine) KeyUp(raw string) {
	k, ok := ParseKey(raw)
	if !ok || !e.attached {
		return
	}
	e.world.Input[k] = false
}

// Fire launches missiles if the reload interval has elapsed. Under the weapon
// power-up it fires a faster three-missile volley: one from the nose and two
// from the wings, slightly lower.
func (e *Engine) Fire() bool {
	if !e.ready || !e.attached || !e.world.Phase.Running() {
		return false
	}
	mc := e.cfg.Missile
	p := &e.world.Player

	now := e.clock()
	if !reloaded(now, e.lastFire, mc.ReloadInterval) {
		return false
	}
	e.lastFire = now

	cx := p.X + p.W/2 - mc.Width/2
	var volley []Missile
	if p.PowerUpActive {
		shot := func(x, y float64) Missile {
			return Missile{
				Rect:  Rect{X: x, Y: y, W: mc.Width, H: mc.PoweredHeight},
				Speed: mc.PoweredSpeed,
				Color: mc.PoweredColor.RGBA(),
			}
		}
		volley = []Missile{
			shot(cx, p.Y),
			shot(p.X+mc.WingLeft, p.Y+mc.WingDrop),
			shot(p.X+p.W-mc.WingRight, p.Y+mc.WingDrop),
		}
	} else {
		volley = []Missile{{
			Rect:  Rect{X: cx, Y: p.Y, W: mc.Width, H: mc.Height},
			Speed: mc.Speed,
			Color: mc.Color.RGBA(),
		}}
	}
	p.Missiles = append(p.Missiles, volley...)
	e.record(playerLabel, "fire", "volley", "", float64(len(volley)))
	return true
}

// Pause stops tick execution until Resume.
func (e *Engine) Pause() bool { return e.apply(evPause) }

// Resume continues a paused game.
func (e *Engine) Resume() bool { return e.apply(evResume) }

// End finishes the session: input is detached and ticks halt until Reset.
func (e *Engine) End() bool {
	if !e.apply(evEnd) {
		return false
	}
	e.attached = false
	e.world.Input.clear()
	return true
}

// Reset starts a new session from any phase. Stars are kept.
func (e *Engine) Reset() bool {
	if !e.ready {
		return false
	}
	e.apply(evReset)
	e.resetSession()
	e.notify()
	return true
}

func (e *Engine) apply(ev phaseEvent) bool {
	if !e.ready {
		return false
	}
	from := e.world.Phase
	next, ok := from.transition(ev)
	if !ok {
		return false
	}
	e.world.Phase = next
	e.record("--", "state", ev.String(), from.String()+" → "+next.String(), float64(e.world.Player.Score))
	return true
}

// Subscribe registers a render collaborator. It receives a fresh snapshot
// after every executed tick and every reset.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	for _, fn := range e.listeners {
		fn(e.Snapshot())
	}
}

// Snapshot returns a deep copy of the current world.
func (e *Engine) Snapshot() Snapshot { return e.world.snapshot(e.session) }

// Phase is the current state machine phase.
func (e *Engine) Phase() Phase { return e.world.Phase }

// SessionID identifies the current session; it changes on every reset.
func (e *Engine) SessionID() string { return e.session }

// Settings returns the engine's configuration.
func (e *Engine) Settings() Settings { return e.cfg }

// Log is the engine's event log.
func (e *Engine) Log() *SimLog { return e.log }

func (e *Engine) record(subject, category, key, value string, num float64) {
	e.log.Add(e.world.Tick, subject, category, key, value, num)
}
