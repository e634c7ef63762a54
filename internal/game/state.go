package game

// Phase is the game state machine.
//
//	Playing --pause--> Paused --resume--> Playing
//	Playing --last life lost / end--> GameOver
//	any --reset--> Playing
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// Running reports whether ticks execute in this phase.
func (p Phase) Running() bool { return p == PhasePlaying }

// transition applies a named event and returns the next phase and whether the
// event was legal from p. Illegal events leave the phase untouched.
func (p Phase) transition(ev phaseEvent) (Phase, bool) {
	switch ev {
	case evPause:
		if p == PhasePlaying {
			return PhasePaused, true
		}
	case evResume:
		if p == PhasePaused {
			return PhasePlaying, true
		}
	case evEnd:
		if p != PhaseGameOver {
			return PhaseGameOver, true
		}
	case evReset:
		return PhasePlaying, true
	}
	return p, false
}

type phaseEvent int

const (
	evPause phaseEvent = iota
	evResume
	evEnd
	evReset
)

var phaseEventNames = [...]string{
	evPause:  "pause",
	evResume: "resume",
	evEnd:    "end",
	evReset:  "reset",
}

func (e phaseEvent) String() string { return phaseEventNames[e] }
