package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

// 800x600 on an 80x25 terminal: 10 px per column, 25 px per row.
func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Width:  800,
		Height: 600,
		Player: game.Player{
			Rect:     game.Rect{X: 375, Y: 500, W: 50, H: 30},
			Score:    30,
			Lives:    2,
			Missiles: []game.Missile{{Rect: game.Rect{X: 398, Y: 300, W: 4, H: 10}}},
		},
		Enemies: []game.Enemy{
			{Rect: game.Rect{X: 100, Y: 100, W: 60, H: 60}, Kind: game.EnemyBoss, Alpha: 1},
			{Rect: game.Rect{X: 600, Y: 50, W: 30, H: 30}, Kind: game.EnemyBasic, Alpha: 0.5},
		},
		PowerUps: []game.PowerUp{{Rect: game.Rect{X: 700, Y: 400, W: 20, H: 20}, Kind: game.PowerUpLife}},
		Stars:    []game.Star{{X: 5, Y: 5, Size: 1}},
	}
}

func TestRender_PlacesEntitiesOnGrid(t *testing.T) {
	s := newSimScreen(t, 80, 25)
	Render(s, testSnapshot())

	cell := func(x, y int) rune {
		r, _, _, _ := s.GetContent(x, y)
		return r
	}
	assert.Equal(t, glyphPlayer, cell(37, 20))
	assert.Equal(t, glyphPlayer, cell(42, 21))
	assert.Equal(t, glyphBoss, cell(10, 4))
	assert.Equal(t, glyphBoss, cell(15, 6))
	assert.Equal(t, glyphEnemy, cell(60, 2))
	assert.Equal(t, glyphMissile, cell(39, 12))
	assert.Equal(t, glyphLife, cell(70, 16))
	assert.Equal(t, glyphStar, cell(0, 0))

	_, _, st, _ := s.GetContent(60, 2)
	_, _, attrs := st.Decompose()
	assert.NotZero(t, attrs&tcell.AttrDim, "damaged enemy should be dimmed")

	status := rowText(s, 24)
	assert.Contains(t, status, "SCORE 30")
	assert.Contains(t, status, "LIVES 2")
}

func TestRender_GameOverHidesCraft(t *testing.T) {
	s := newSimScreen(t, 80, 25)
	snap := testSnapshot()
	snap.GameOver = true
	snap.Phase = game.PhaseGameOver
	Render(s, snap)

	r, _, _, _ := s.GetContent(40, 20)
	assert.NotEqual(t, glyphPlayer, r)
	assert.Contains(t, rowText(s, 24), "GAME OVER")
}

func TestRender_TooSmall(t *testing.T) {
	s := newSimScreen(t, 10, 3)
	Render(s, testSnapshot())
	assert.Equal(t, "terminal t", rowText(s, 0))
}

func TestStatusLine(t *testing.T) {
	snap := testSnapshot()
	snap.Player.PowerUpActive = true
	snap.Player.PowerUpFramesRemaining = 90
	snap.IsPaused = true
	line := statusLine(snap)
	assert.Contains(t, line, "WEAPON 1.5s")
	assert.Contains(t, line, "PAUSED")
}
