// Package term is a terminal host for the engine built on tcell. The board is
// scaled down onto the character grid; the last row is a status line.
package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

const (
	glyphStar    = '.'
	glyphMissile = '|'
	glyphPlayer  = 'A'
	glyphEnemy   = '#'
	glyphBoss    = '@'
	glyphWeapon  = 'W'
	glyphLife    = '+'
)

// grid maps board coordinates onto a cols×rows cell area.
type grid struct {
	cols, rows int
	sx, sy     float64 // board pixels per cell
}

func newGrid(snap game.Snapshot, cols, rows int) grid {
	return grid{
		cols: cols,
		rows: rows,
		sx:   snap.Width / float64(cols),
		sy:   snap.Height / float64(rows),
	}
}

func (g grid) cell(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	cx, cy := int(x/g.sx), int(y/g.sy)
	if cx >= g.cols || cy >= g.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// fill paints every cell a board rectangle touches.
func (g grid) fill(s tcell.Screen, r game.Rect, ch rune, st tcell.Style) {
	x0, y0 := int(r.X/g.sx), int(r.Y/g.sy)
	x1, y1 := int((r.X+r.W-1)/g.sx), int((r.Y+r.H-1)/g.sy)
	for y := max(y0, 0); y <= min(y1, g.rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, g.cols-1); x++ {
			s.SetContent(x, y, ch, nil, st)
		}
	}
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Render draws snap onto s, replacing whatever was there.
func Render(s tcell.Screen, snap game.Snapshot) {
	s.Clear()
	w, h := s.Size()
	if w < 20 || h < 6 {
		drawString(s, 0, 0, "terminal too small", tcell.StyleDefault)
		s.Show()
		return
	}
	g := newGrid(snap, w, h-1)

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, st := range snap.Stars {
		if x, y, ok := g.cell(st.X, st.Y); ok {
			s.SetContent(x, y, glyphStar, nil, dim)
		}
	}
	for _, u := range snap.PowerUps {
		ch := glyphWeapon
		if u.Kind == game.PowerUpLife {
			ch = glyphLife
		}
		g.fill(s, u.Rect, ch, styleFor(u.Color).Bold(true))
	}
	for _, e := range snap.Enemies {
		ch := glyphEnemy
		if e.Kind == game.EnemyBoss {
			ch = glyphBoss
		}
		st := styleFor(e.Color)
		if e.Alpha < 1 {
			st = st.Dim(true)
		}
		g.fill(s, e.Rect, ch, st)
	}
	for _, m := range snap.Player.Missiles {
		g.fill(s, m.Rect, glyphMissile, styleFor(m.Color))
	}
	if !snap.GameOver {
		p := snap.Player
		st := styleFor(p.Color).Bold(true)
		if p.Invincible && (snap.Tick/6)%2 == 1 {
			st = st.Dim(true)
		}
		g.fill(s, p.Rect, glyphPlayer, st)
	}

	drawString(s, 0, h-1, statusLine(snap), tcell.StyleDefault.Reverse(true))
	s.Show()
}

func statusLine(snap game.Snapshot) string {
	p := snap.Player
	line := fmt.Sprintf(" SCORE %d  LIVES %d", p.Score, p.Lives)
	if p.PowerUpActive {
		line += fmt.Sprintf("  WEAPON %.1fs", float64(p.PowerUpFramesRemaining)/60)
	}
	switch {
	case snap.GameOver:
		line += "  GAME OVER  r restart  q quit"
	case snap.IsPaused:
		line += "  PAUSED  p resume"
	default:
		line += "  arrows/wasd move  space fire  p pause  q quit"
	}
	return line
}

func drawString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
