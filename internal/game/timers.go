package game

import "time"

// decayTimers is the last phase of a tick. A window granted during tick T
// with N frames stays active through tick T+N and clears at the end of it.
func decayTimers(ctx *tickContext) {
	p := &ctx.w.Player
	if p.Invincible && countdown(&p.InvincibleFramesRemaining) {
		p.Invincible = false
		ctx.record(playerLabel, "player", "invincible_end", "", 0)
	}
	if p.PowerUpActive && countdown(&p.PowerUpFramesRemaining) {
		p.PowerUpActive = false
		ctx.record(playerLabel, "player", "power_up_end", "", 0)
	}
}

// countdown decrements a frame counter and reports true once it was already
// exhausted.
func countdown(frames *int) bool {
	if *frames <= 0 {
		*frames = 0
		return true
	}
	*frames--
	return false
}

// reloaded is the wall-clock fire-rate gate: strictly more than interval must
// have passed since the last shot. A zero last means nothing was fired yet.
func reloaded(now, last time.Time, interval time.Duration) bool {
	if last.IsZero() {
		return true
	}
	return now.Sub(last) > interval
}
