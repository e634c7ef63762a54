package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is wrapped by every error Settings.Validate returns.
var ErrInvalidSettings = errors.New("invalid settings")

// livesCeiling is the hard upper bound on PlayerSettings.MaxLives.
const livesCeiling = 5

// HexColor is a colour that round-trips through YAML as "#RRGGBB".
type HexColor color.RGBA

// RGBA returns the colour as an opaque color.RGBA.
func (c HexColor) RGBA() color.RGBA { return color.RGBA(c) }

func (c HexColor) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
}

func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := parseHex(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

func parseHex(s string) (HexColor, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return HexColor{}, fmt.Errorf("colour %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return HexColor{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return HexColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func hex(s string) HexColor {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// BoardSettings describes the play field.
type BoardSettings struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Background HexColor `yaml:"background"`
}

// PlayerSettings holds the craft's size, speed and life budget.
type PlayerSettings struct {
	Width        float64  `yaml:"width"`
	Height       float64  `yaml:"height"`
	Speed        float64  `yaml:"speed"`
	Color        HexColor `yaml:"color"`
	StartLives   int      `yaml:"start_lives"`
	MaxLives     int      `yaml:"max_lives"`
	BottomOffset float64  `yaml:"bottom_offset"` // start y = board height - offset
}

// MissileSettings covers both normal and powered shots. Both share one
// reload interval.
type MissileSettings struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	Speed          float64       `yaml:"speed"`
	Color          HexColor      `yaml:"color"`
	ReloadInterval time.Duration `yaml:"reload_interval"`

	PoweredHeight float64  `yaml:"powered_height"`
	PoweredSpeed  float64  `yaml:"powered_speed"`
	PoweredColor  HexColor `yaml:"powered_color"`
	// Wing missiles sit WingLeft in from the craft's left edge and WingRight
	// in from its right edge, WingDrop below the centre missile.
	WingLeft  float64 `yaml:"wing_left"`
	WingRight float64 `yaml:"wing_right"`
	WingDrop  float64 `yaml:"wing_drop"`
}

// EnemySpeedSettings is the fall speed of each enemy kind, per frame.
type EnemySpeedSettings struct {
	Basic  float64 `yaml:"basic"`
	Fast   float64 `yaml:"fast"`
	Zigzag float64 `yaml:"zigzag"`
	Boss   float64 `yaml:"boss"`
}

// For returns the fall speed of kind k. Unknown kinds fall like basic.
func (s EnemySpeedSettings) For(k EnemyKind) float64 {
	switch k {
	case EnemyFast:
		return s.Fast
	case EnemyZigzag:
		return s.Zigzag
	case EnemyBoss:
		return s.Boss
	}
	return s.Basic
}

// SpawnSettings is the fixed probability table.
type SpawnSettings struct {
	EnemySpawnRate float64 `yaml:"enemy_spawn_rate"`
	BossChance     float64 `yaml:"boss_chance"`
	SpecialChance  float64 `yaml:"special_chance"`
	PowerUpChance  float64 `yaml:"power_up_chance"`
	LifeThreshold  float64 `yaml:"life_threshold"` // kind draw above this yields a life power-up
}

type PowerUpSettings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// TimerSettings are frame counts.
type TimerSettings struct {
	InvincibleFrames int `yaml:"invincible_frames"`
	PowerUpFrames    int `yaml:"power_up_frames"`
}

type StarSettings struct {
	Count    int     `yaml:"count"`
	MinSize  float64 `yaml:"min_size"`
	MaxSize  float64 `yaml:"max_size"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// EffectSettings controls the damage flash on enemies.
type EffectSettings struct {
	DamagedAlpha  float64 `yaml:"damaged_alpha"`
	AlphaRecovery float64 `yaml:"alpha_recovery"`
}

// Settings is the static configuration of an engine. It is copied into the
// engine at construction and never re-read.
type Settings struct {
	Board      BoardSettings      `yaml:"board"`
	Player     PlayerSettings     `yaml:"player"`
	Missile    MissileSettings    `yaml:"missile"`
	EnemySpeed EnemySpeedSettings `yaml:"enemy_speed"`
	Spawn      SpawnSettings      `yaml:"spawn"`
	PowerUp    PowerUpSettings    `yaml:"power_up"`
	Timers     TimerSettings      `yaml:"timers"`
	Stars      StarSettings       `yaml:"stars"`
	Effects    EffectSettings     `yaml:"effects"`
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Board: BoardSettings{Width: 800, Height: 600, Background: hex("#111111")},
		Player: PlayerSettings{
			Width:        50,
			Height:       30,
			Speed:        5,
			Color:        hex("#0095DD"),
			StartLives:   3,
			MaxLives:     5,
			BottomOffset: 100,
		},
		Missile: MissileSettings{
			Width:          4,
			Height:         10,
			Speed:          8,
			Color:          hex("#FF0000"),
			ReloadInterval: 200 * time.Millisecond,
			PoweredHeight:  15,
			PoweredSpeed:   10,
			PoweredColor:   hex("#00FFFF"),
			WingLeft:       10,
			WingRight:      15,
			WingDrop:       5,
		},
		EnemySpeed: EnemySpeedSettings{Basic: 3, Fast: 5, Zigzag: 2.5, Boss: 1.5},
		Spawn: SpawnSettings{
			EnemySpawnRate: 0.02,
			BossChance:     0.05,
			SpecialChance:  0.30,
			PowerUpChance:  0.005,
			LifeThreshold:  0.7,
		},
		PowerUp: PowerUpSettings{Width: 20, Height: 20, Speed: 2},
		Timers:  TimerSettings{InvincibleFrames: 120, PowerUpFrames: 500},
		Stars:   StarSettings{Count: 100, MinSize: 1, MaxSize: 3, MinSpeed: 0.1, MaxSpeed: 0.6},
		Effects: EffectSettings{DamagedAlpha: 0.5, AlphaRecovery: 0.05},
	}
}

// LoadSettings reads a YAML file and overlays it on DefaultSettings. Unknown
// keys are rejected so typos do not silently fall back to defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("load settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports every field that would break the simulation.
func (s Settings) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}
	prob := func(name string, v float64) {
		if v < 0 || v > 1 {
			bad("%s %.3f outside [0,1]", name, v)
		}
	}

	if s.Player.Width <= 0 || s.Player.Height <= 0 {
		bad("player size %.0fx%.0f", s.Player.Width, s.Player.Height)
	}
	if s.Player.MaxLives <= 0 || s.Player.StartLives <= 0 || s.Player.StartLives > s.Player.MaxLives {
		bad("lives start=%d max=%d", s.Player.StartLives, s.Player.MaxLives)
	}
	if s.Player.MaxLives > livesCeiling {
		bad("max_lives %d above %d", s.Player.MaxLives, livesCeiling)
	}
	if s.Missile.Speed <= 0 || s.Missile.PoweredSpeed <= 0 {
		bad("missile speed %.1f/%.1f must be positive", s.Missile.Speed, s.Missile.PoweredSpeed)
	}
	if s.Missile.Width <= 0 || s.Missile.Height <= 0 || s.Missile.PoweredHeight <= 0 {
		bad("missile size must be positive")
	}
	if s.Missile.ReloadInterval < 0 {
		bad("negative reload interval")
	}
	for _, k := range EnemyKinds() {
		if v := s.EnemySpeed.For(k); v <= 0 {
			bad("enemy_speed.%s %.2f must be positive", k, v)
		}
	}
	prob("enemy_spawn_rate", s.Spawn.EnemySpawnRate)
	prob("boss_chance", s.Spawn.BossChance)
	prob("special_chance", s.Spawn.SpecialChance)
	prob("power_up_chance", s.Spawn.PowerUpChance)
	prob("life_threshold", s.Spawn.LifeThreshold)
	if s.Spawn.SpecialChance < s.Spawn.BossChance {
		bad("special_chance %.3f below boss_chance %.3f", s.Spawn.SpecialChance, s.Spawn.BossChance)
	}
	if s.PowerUp.Width <= 0 || s.PowerUp.Height <= 0 || s.PowerUp.Speed <= 0 {
		bad("power-up size/speed must be positive")
	}
	if s.Timers.InvincibleFrames < 0 || s.Timers.PowerUpFrames < 0 {
		bad("negative timer")
	}
	if s.Stars.Count < 0 || s.Stars.MaxSize < s.Stars.MinSize || s.Stars.MaxSpeed < s.Stars.MinSpeed {
		bad("star ranges")
	}
	if s.Effects.DamagedAlpha < 0 || s.Effects.DamagedAlpha > 1 || s.Effects.AlphaRecovery < 0 {
		bad("alpha effect %.2f/%.2f", s.Effects.DamagedAlpha, s.Effects.AlphaRecovery)
	}
	return errors.Join(errs...)
}
