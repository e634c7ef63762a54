// Package screen is the desktop host: it drives a game.Engine from ebiten's
// update loop, forwards keyboard input and draws snapshots.
package screen

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 16

// statusFrames is how long a status message stays in the HUD (~3s).
const statusFrames = 180

// Game implements ebiten.Game around an engine.
type Game struct {
	eng      *game.Engine
	cfg      game.Settings
	feed     *EventFeed
	reporter *game.SimReporter

	held     map[game.Key]bool
	prevKeys map[ebiten.Key]bool
	logSeen  int

	width, height int
	boardW        int
	boardH        int
	offX, offY    int
	boardBuf      *ebiten.Image

	showHelp  bool
	status    string
	statusTTL int
}

// New wraps an initialised engine.
func New(eng *game.Engine) *Game {
	cfg := eng.Settings()
	snap := eng.Snapshot()
	bw, bh := int(snap.Width), int(snap.Height)
	g := &Game{
		eng:      eng,
		cfg:      cfg,
		feed:     NewEventFeed(),
		reporter: game.NewSimReporter(0),
		held:     map[game.Key]bool{},
		prevKeys: make(map[ebiten.Key]bool),
		width:    borderWidth + bw + borderWidth + feedPanelWidth,
		height:   borderWidth + bh + borderWidth,
		boardW:   bw,
		boardH:   bh,
		offX:     borderWidth,
		offY:     borderWidth,
		boardBuf: ebiten.NewImage(bw, bh),
		showHelp: true,
	}
	return g
}

// Update handles input every frame and runs one engine tick.
func (g *Game) Update() error {
	g.handleInput()

	if g.eng.Tick() {
		if snap := g.eng.Snapshot(); snap.Tick%60 == 0 {
			g.reporter.Collect(snap)
		}
	}
	g.pollLog()

	if g.statusTTL > 0 {
		g.statusTTL--
	}
	return nil
}

// pollLog moves new engine events into the feed.
func (g *Game) pollLog() {
	sl := g.eng.Log()
	for _, e := range sl.Since(g.logSeen) {
		if fe, ok := feedEntry(e); ok {
			g.feed.Add(fe)
		}
	}
	g.logSeen = sl.Len()
}

func (g *Game) restart() {
	if !g.eng.Reset() {
		return
	}
	// The engine dropped its held keys; resend anything still down.
	g.held = map[game.Key]bool{}
	g.feed.Clear()
	g.flash("new session")
}

func (g *Game) copyReport() {
	if g.eng.Phase() != game.PhaseGameOver {
		g.flash("report is available after game over")
		return
	}
	report := game.BuildRunReport(g.eng.Log(), g.eng.Snapshot()).Format()
	report += "\n" + g.reporter.WindowSummary().Format()
	if err := clipboard.WriteAll(report); err != nil {
		g.flash("copy failed: " + err.Error())
		return
	}
	g.flash("run report copied to clipboard")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusTTL = statusFrames
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
