package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	hudColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	accentColor  = color.RGBA{R: 240, G: 220, B: 80, A: 255}
	overlayShade = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	borderColor  = color.RGBA{R: 60, G: 70, B: 110, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 6, B: 10, A: 255})

	snap := g.eng.Snapshot()

	// Everything on the board is drawn at (0,0) and blitted, so entities
	// still above the top edge are clipped.
	g.boardBuf.Fill(g.cfg.Board.Background.RGBA())
	g.drawWorld(g.boardBuf, snap)
	g.drawHUD(g.boardBuf, snap)
	g.drawOverlay(g.boardBuf, snap)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.boardBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.boardW)+2, float32(g.boardH)+2, 2.0, borderColor, false)

	g.feed.Draw(screen, g.offX+g.boardW+borderWidth, g.height)
}

func (g *Game) drawWorld(dst *ebiten.Image, snap game.Snapshot) {
	for _, s := range snap.Stars {
		a := uint8(90 + 55*s.Size)
		vector.FillRect(dst, float32(s.X), float32(s.Y), float32(s.Size), float32(s.Size), color.RGBA{R: a, G: a, B: a, A: a}, false)
	}

	for _, u := range snap.PowerUps {
		cx, cy := float32(u.X+u.W/2), float32(u.Y+u.H/2)
		vector.FillCircle(dst, cx, cy, float32(u.W/2), u.Color, true)
		vector.StrokeCircle(dst, cx, cy, float32(u.W/2)+2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 120}, true)
		label := "W"
		if u.Kind == game.PowerUpLife {
			label = "+"
		}
		ebitenutil.DebugPrintAt(dst, label, int(cx)-3, int(cy)-9)
	}

	for _, e := range snap.Enemies {
		col := fade(e.Color, e.Alpha)
		vector.FillRect(dst, float32(e.X), float32(e.Y), float32(e.W), float32(e.H), col, false)
		if e.Kind == game.EnemyBoss {
			vector.StrokeRect(dst, float32(e.X), float32(e.Y), float32(e.W), float32(e.H), 2, fade(accentColor, e.Alpha), false)
			// Health bar above the hull.
			frac := float32(e.Health) / float32(e.Kind.Spec().Health)
			vector.FillRect(dst, float32(e.X), float32(e.Y)-5, float32(e.W), 3, color.RGBA{R: 60, A: 255}, false)
			vector.FillRect(dst, float32(e.X), float32(e.Y)-5, float32(e.W)*frac, 3, color.RGBA{R: 220, G: 40, B: 40, A: 255}, false)
		}
	}

	for _, m := range snap.Player.Missiles {
		vector.FillRect(dst, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), m.Color, false)
	}

	g.drawPlayer(dst, snap)
}

// drawPlayer renders the craft as an upward triangle. It blinks while
// invincible.
func (g *Game) drawPlayer(dst *ebiten.Image, snap game.Snapshot) {
	p := snap.Player
	if snap.GameOver {
		return
	}
	alpha := 1.0
	if p.Invincible && (snap.Tick/6)%2 == 1 {
		alpha = 0.35
	}
	x, y, w, h := float32(p.X), float32(p.Y), float32(p.W), float32(p.H)

	var path vector.Path
	path.MoveTo(x+w/2, y)
	path.LineTo(x+w, y+h)
	path.LineTo(x, y+h)
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(p.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)

	if p.PowerUpActive {
		glow := fade(game.PowerUpWeapon.Color(), 0.6*alpha)
		vector.StrokeLine(dst, x, y+h+2, x+w, y+h+2, 2, glow, true)
	}
}

func (g *Game) drawHUD(dst *ebiten.Image, snap game.Snapshot) {
	p := snap.Player
	lines := []string{
		fmt.Sprintf("SCORE %d", p.Score),
		fmt.Sprintf("LIVES %d", p.Lives),
	}
	if p.PowerUpActive {
		lines = append(lines, fmt.Sprintf("WEAPON %.1fs", float64(p.PowerUpFramesRemaining)/60))
	}
	for i, l := range lines {
		drawText(dst, l, 8, 6+float64(i)*16, hudColor, text.AlignStart)
	}

	if g.statusTTL > 0 {
		drawText(dst, g.status, float64(g.boardW)/2, 6, accentColor, text.AlignCenter)
	}

	if g.showHelp {
		help := []string{
			"arrows/WASD move  space fire",
			"P pause  R restart  Esc end",
			"C copy report  H hide help",
		}
		y := g.boardH - len(help)*12 - 6
		for i, l := range help {
			ebitenutil.DebugPrintAt(dst, l, 6, y+i*12)
		}
	}
}

func (g *Game) drawOverlay(dst *ebiten.Image, snap game.Snapshot) {
	var title, sub string
	switch {
	case snap.GameOver:
		title = "GAME OVER"
		sub = fmt.Sprintf("score %d  -  R to play again, C to copy report", snap.Player.Score)
	case snap.IsPaused:
		title = "PAUSED"
		sub = "P to resume"
	default:
		return
	}
	vector.FillRect(dst, 0, 0, float32(g.boardW), float32(g.boardH), overlayShade, false)
	cx, cy := float64(g.boardW)/2, float64(g.boardH)/2
	drawText(dst, title, cx, cy-20, accentColor, text.AlignCenter)
	drawText(dst, sub, cx, cy+4, hudColor, text.AlignCenter)
}

func drawText(dst *ebiten.Image, s string, x, y float64, col color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = align
	text.Draw(dst, s, hudFace, op)
}

// fade scales a colour by a in premultiplied space.
func fade(c color.RGBA, a float64) color.RGBA {
	if a >= 1 {
		return c
	}
	if a < 0 {
		a = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
