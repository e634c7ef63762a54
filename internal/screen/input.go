package screen

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

// binding maps a physical key to an engine key identifier.
type binding struct {
	key    ebiten.Key
	action game.Key
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, game.KeyLeft},
	{ebiten.KeyA, game.KeyLeft},
	{ebiten.KeyArrowRight, game.KeyRight},
	{ebiten.KeyD, game.KeyRight},
	{ebiten.KeyArrowUp, game.KeyUp},
	{ebiten.KeyW, game.KeyUp},
	{ebiten.KeyArrowDown, game.KeyDown},
	{ebiten.KeyS, game.KeyDown},
	{ebiten.KeySpace, game.KeyFire},
}

// controlKeys are edge-triggered host commands.
var controlKeys = []ebiten.Key{
	ebiten.KeyP,      // pause / resume
	ebiten.KeyR,      // new session
	ebiten.KeyEscape, // end session
	ebiten.KeyC,      // copy run report after game over
	ebiten.KeyH,      // toggle help legend
}

// diffKeys compares two held sets and returns the engine keys that went down
// and came up, in a stable order.
func diffKeys(prev, cur map[game.Key]bool) (down, up []game.Key) {
	for _, k := range []game.Key{game.KeyLeft, game.KeyRight, game.KeyUp, game.KeyDown, game.KeyFire} {
		switch {
		case cur[k] && !prev[k]:
			down = append(down, k)
		case !cur[k] && prev[k]:
			up = append(up, k)
		}
	}
	return down, up
}

func (g *Game) handleInput() {
	held := map[game.Key]bool{}
	for _, b := range bindings {
		if ebiten.IsKeyPressed(b.key) {
			held[b.action] = true
		}
	}
	down, up := diffKeys(g.held, held)
	for _, k := range up {
		g.eng.KeyUp(string(k))
	}
	for _, k := range down {
		g.eng.KeyDown(string(k))
	}
	g.held = held

	// Holding the trigger repeats; the engine's reload gate sets the pace.
	if held[game.KeyFire] {
		g.eng.Fire()
	}

	currentKeys := map[ebiten.Key]bool{}
	for _, k := range controlKeys {
		currentKeys[k] = ebiten.IsKeyPressed(k)
	}
	pressed := func(k ebiten.Key) bool { return currentKeys[k] && !g.prevKeys[k] }

	if pressed(ebiten.KeyP) {
		if g.eng.Phase() == game.PhasePaused {
			g.eng.Resume()
		} else {
			g.eng.Pause()
		}
	}
	if pressed(ebiten.KeyEscape) && g.eng.End() {
		g.flash("session ended, R to restart")
	}
	if pressed(ebiten.KeyR) {
		g.restart()
	}
	if pressed(ebiten.KeyC) {
		g.copyReport()
	}
	if pressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	g.prevKeys = currentKeys
}
