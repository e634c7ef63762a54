package game

// Key is a logical key identifier delivered by the input collaborator.
type Key string

const (
	KeyLeft  Key = "ArrowLeft"
	KeyRight Key = "ArrowRight"
	KeyUp    Key = "ArrowUp"
	KeyDown  Key = "ArrowDown"
	KeyFire  Key = " "

	// keyFireAlt is the legacy identifier some hosts report for the space bar.
	keyFireAlt Key = "Spacebar"
)

// ParseKey normalises a raw identifier. Unknown identifiers return ok=false
// and never reach the engine.
func ParseKey(raw string) (Key, bool) {
	switch k := Key(raw); k {
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyFire:
		return k, true
	case keyFireAlt:
		return KeyFire, true
	}
	return "", false
}

// InputState maps keys to their held state.
type InputState map[Key]bool

// Held reports whether k is currently down.
func (in InputState) Held(k Key) bool { return in[k] }

func (in InputState) clone() InputState {
	out := make(InputState, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (in InputState) clear() {
	for k := range in {
		delete(in, k)
	}
}
