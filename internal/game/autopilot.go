package game

import "math"

// Autopilot is a simple scripted pilot used by the headless report and the
// long-running invariant tests. It lines up under the lowest enemy, keeps
// clear of anything about to ram it, and holds the trigger.
type Autopilot struct {
	// Deadband is the horizontal slack, in pixels, before it steers.
	Deadband float64
	// DodgeRange is how far above the craft an enemy must be before it is
	// treated as a collision threat.
	DodgeRange float64
}

// NewAutopilot returns a pilot with reasonable defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{Deadband: 4, DodgeRange: 60}
}

// Drive sets the engine's held keys for the next tick and fires.
func (a *Autopilot) Drive(e *Engine) {
	snap := e.Snapshot()
	if !snap.Phase.Running() {
		return
	}
	p := snap.Player
	cx := p.X + p.W/2

	target, threat := a.pick(snap)
	left, right := false, false
	switch {
	case threat != nil:
		// Step out of the column the threat occupies, towards open space.
		tcx := threat.X + threat.W/2
		if tcx >= cx && p.X > 0 || p.X+p.W >= snap.Width {
			left = true
		} else {
			right = true
		}
	case target != nil:
		tcx := target.X + target.W/2
		if tcx < cx-a.Deadband {
			left = true
		} else if tcx > cx+a.Deadband {
			right = true
		}
	}

	a.hold(e, KeyLeft, left)
	a.hold(e, KeyRight, right)
	a.hold(e, KeyFire, true)
	e.Fire()
}

func (a *Autopilot) hold(e *Engine, k Key, down bool) {
	if down {
		if !e.world.Input.Held(k) {
			e.KeyDown(string(k))
		}
		return
	}
	if e.world.Input.Held(k) {
		e.KeyUp(string(k))
	}
}

// pick returns the lowest enemy still above the craft and the nearest one
// overlapping its column inside DodgeRange.
func (a *Autopilot) pick(snap Snapshot) (target, threat *Enemy) {
	p := snap.Player
	bestTarget := math.Inf(-1)
	bestThreat := math.Inf(1)
	for i := range snap.Enemies {
		en := &snap.Enemies[i]
		if en.Y+en.H > p.Y+p.H {
			continue
		}
		if en.Y > bestTarget {
			bestTarget = en.Y
			target = en
		}
		overlapX := en.X < p.X+p.W && en.X+en.W > p.X
		gap := p.Y - (en.Y + en.H)
		if overlapX && gap < a.DodgeRange && gap < bestThreat {
			bestThreat = gap
			threat = en
		}
	}
	return target, threat
}
