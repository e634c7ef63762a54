package game

import "fmt"

// World is the aggregate game state. The engine owns it exclusively; anything
// outside the package sees it only through a Snapshot.
type World struct {
	Width, Height float64

	Player   Player
	Enemies  []Enemy   // spawn order
	PowerUps []PowerUp // spawn order
	Stars    []Star
	Input    InputState

	Phase Phase
	Tick  int
}

// tickContext is what every system function receives: the world plus the
// collaborators a tick may consult.
type tickContext struct {
	w      *World
	cfg    *Settings
	rng    Rand
	log    *SimLog
	nextID *int
}

func (c *tickContext) newID() int {
	*c.nextID++
	return *c.nextID
}

func (c *tickContext) record(subject, category, key, value string, num float64) {
	if c.log == nil {
		return
	}
	c.log.Add(c.w.Tick, subject, category, key, value, num)
}

func enemyLabel(e *Enemy) string     { return fmt.Sprintf("E%d", e.ID) }
func powerUpLabel(p *PowerUp) string { return fmt.Sprintf("U%d", p.ID) }

const playerLabel = "P1"

// Snapshot is a deep, read-only copy of the world handed to render and UI
// collaborators. Mutating it has no effect on the engine.
type Snapshot struct {
	SessionID     string
	Width, Height float64
	Tick          int

	Player   Player
	Enemies  []Enemy
	PowerUps []PowerUp
	Stars    []Star
	Input    InputState

	Phase    Phase
	GameOver bool
	IsPaused bool
}

func (w *World) snapshot(session string) Snapshot {
	p := w.Player
	p.Missiles = append([]Missile(nil), w.Player.Missiles...)
	return Snapshot{
		SessionID: session,
		Width:     w.Width,
		Height:    w.Height,
		Tick:      w.Tick,
		Player:    p,
		Enemies:   append([]Enemy(nil), w.Enemies...),
		PowerUps:  append([]PowerUp(nil), w.PowerUps...),
		Stars:     append([]Star(nil), w.Stars...),
		Input:     w.Input.clone(),
		Phase:     w.Phase,
		GameOver:  w.Phase == PhaseGameOver,
		IsPaused:  w.Phase == PhasePaused,
	}
}
