package game

import (
	"image/color"
	"math"
)

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Intersects is the strict AABB test: touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// EnemyKind is the closed set of adversary variants.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
	EnemyZigzag
	EnemyBoss
	enemyKindCount
)

// EnemySpec is the fixed descriptor shared by every enemy of one kind.
type EnemySpec struct {
	Name   string
	Width  float64
	Height float64
	Health int
	Points int
	Color  color.RGBA

	// Horizontal oscillation: dx = sin(y*WaveFreq) * WaveAmp. Zero amp = straight fall.
	WaveFreq float64
	WaveAmp  float64
}

// Fall speeds are tunable and live in Settings.EnemySpeed.
var enemySpecs = [enemyKindCount]EnemySpec{
	EnemyBasic:  {Name: "basic", Width: 30, Height: 30, Health: 1, Points: 10, Color: color.RGBA{R: 255, G: 85, B: 85, A: 255}},
	EnemyFast:   {Name: "fast", Width: 20, Height: 20, Health: 1, Points: 15, Color: color.RGBA{R: 255, G: 170, B: 0, A: 255}},
	EnemyZigzag: {Name: "zigzag", Width: 35, Height: 35, Health: 2, Points: 20, Color: color.RGBA{R: 255, G: 0, B: 255, A: 255}, WaveFreq: 0.05, WaveAmp: 2},
	EnemyBoss:   {Name: "boss", Width: 80, Height: 60, Health: 10, Points: 100, Color: color.RGBA{R: 255, G: 0, B: 0, A: 255}, WaveFreq: 0.02, WaveAmp: 1.5},
}

// Spec returns the kind's descriptor. Out-of-range kinds fall back to basic.
func (k EnemyKind) Spec() EnemySpec {
	if k < 0 || k >= enemyKindCount {
		return enemySpecs[EnemyBasic]
	}
	return enemySpecs[k]
}

func (k EnemyKind) String() string { return k.Spec().Name }

// EnemyKinds lists every kind in declaration order.
func EnemyKinds() []EnemyKind {
	return []EnemyKind{EnemyBasic, EnemyFast, EnemyZigzag, EnemyBoss}
}

// advance applies one frame of the kind's motion rule at the given fall
// speed. The oscillation is sampled at the new height.
func (k EnemyKind) advance(x, y, speed float64) (float64, float64) {
	s := k.Spec()
	y += speed
	if s.WaveAmp != 0 {
		x += math.Sin(y*s.WaveFreq) * s.WaveAmp
	}
	return x, y
}

// PowerUpKind is the closed set of pickups.
type PowerUpKind int

const (
	PowerUpWeapon PowerUpKind = iota
	PowerUpLife
	powerUpKindCount
)

var powerUpNames = [powerUpKindCount]string{
	PowerUpWeapon: "weapon",
	PowerUpLife:   "life",
}

var powerUpColors = [powerUpKindCount]color.RGBA{
	PowerUpWeapon: {R: 0, G: 255, B: 255, A: 255},
	PowerUpLife:   {R: 0, G: 255, B: 0, A: 255},
}

func (k PowerUpKind) String() string {
	if k < 0 || k >= powerUpKindCount {
		return "unknown"
	}
	return powerUpNames[k]
}

// Color is the pickup's render colour.
func (k PowerUpKind) Color() color.RGBA {
	if k < 0 || k >= powerUpKindCount {
		return color.RGBA{A: 255}
	}
	return powerUpColors[k]
}

// PowerUpKinds lists every kind in declaration order.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{PowerUpWeapon, PowerUpLife}
}

// apply runs the pickup's effect on the player.
func (k PowerUpKind) apply(p *Player, cfg *Settings) {
	switch k {
	case PowerUpWeapon:
		p.PowerUpActive = true
		p.PowerUpFramesRemaining = cfg.Timers.PowerUpFrames
	case PowerUpLife:
		p.Lives++
		if p.Lives > cfg.Player.MaxLives {
			p.Lives = cfg.Player.MaxLives
		}
	}
}

// Missile is a player projectile. Speed is the upward distance per frame.
type Missile struct {
	Rect
	Speed float64
	Color color.RGBA
}

// Enemy is a live adversary. Health is always >= 1 while it is in the field.
type Enemy struct {
	Rect
	ID     int
	Kind   EnemyKind
	Health int
	Points int
	Alpha  float64
	Color  color.RGBA
}

// newEnemy builds a full-health enemy of kind k at (x, y).
func newEnemy(id int, k EnemyKind, x, y float64) Enemy {
	s := k.Spec()
	return Enemy{
		Rect:   Rect{X: x, Y: y, W: s.Width, H: s.Height},
		ID:     id,
		Kind:   k,
		Health: s.Health,
		Points: s.Points,
		Alpha:  1,
		Color:  s.Color,
	}
}

// PowerUp is a falling pickup.
type PowerUp struct {
	Rect
	ID    int
	Kind  PowerUpKind
	Speed float64
	Color color.RGBA
}

// Star is a background particle. It has no gameplay role.
type Star struct {
	X, Y  float64
	Size  float64
	Speed float64
}

// Player is the controlled craft together with its status effects.
type Player struct {
	Rect
	Color    color.RGBA
	Missiles []Missile

	Score int
	Lives int

	Invincible                bool
	InvincibleFramesRemaining int
	PowerUpActive             bool
	PowerUpFramesRemaining    int
}
