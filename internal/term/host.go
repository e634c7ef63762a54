package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Sky-Raid/internal/game"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS

	// tapHold is how long a movement key stays down after a press. Terminals
	// send no release events; auto-repeat keeps a held key alive.
	tapHold = 120 * time.Millisecond
)

// Host runs an engine against a tcell screen.
type Host struct {
	eng    *game.Engine
	screen tcell.Screen
	now    func() time.Time

	release map[game.Key]time.Time
}

// NewHost wraps an engine and an initialised screen. The caller owns the
// screen and finalises it.
func NewHost(eng *game.Engine, s tcell.Screen) *Host {
	return &Host{
		eng:     eng,
		screen:  s,
		now:     time.Now,
		release: map[game.Key]time.Time{},
	}
}

// Run ticks the engine and redraws until a quit key or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !h.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			h.step()
		}
	}
}

// step releases expired taps, runs one tick and redraws.
func (h *Host) step() {
	h.expireTaps()
	h.eng.Tick()
	Render(h.screen, h.eng.Snapshot())
}

func (h *Host) expireTaps() {
	now := h.now()
	for k, at := range h.release {
		if !now.Before(at) {
			h.eng.KeyUp(string(k))
			delete(h.release, k)
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if k, ok := keyFor(ev); ok {
			h.tap(k)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'p', 'P':
			if h.eng.Phase() == game.PhasePaused {
				h.eng.Resume()
			} else {
				h.eng.Pause()
			}
		case 'r', 'R':
			h.eng.Reset()
			h.release = map[game.Key]time.Time{}
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// tap presses k and schedules its release. Fire is released at once: the
// engine only shoots on the press.
func (h *Host) tap(k game.Key) {
	h.eng.KeyDown(string(k))
	if k == game.KeyFire {
		h.eng.KeyUp(string(k))
		return
	}
	h.release[k] = h.now().Add(tapHold)
}

// keyFor maps a terminal key event to an engine key.
func keyFor(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.KeyLeft, true
	case tcell.KeyRight:
		return game.KeyRight, true
	case tcell.KeyUp:
		return game.KeyUp, true
	case tcell.KeyDown:
		return game.KeyDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			return game.KeyLeft, true
		case 'd':
			return game.KeyRight, true
		case 'w':
			return game.KeyUp, true
		case 's':
			return game.KeyDown, true
		case ' ':
			return game.KeyFire, true
		}
	}
	return "", false
}
