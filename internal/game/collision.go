package game

// resolveCollisions is the collision phase. The three passes run in order;
// a game-ending hit in the second pass skips everything after it.
func resolveCollisions(ctx *tickContext) {
	resolveMissileHits(ctx)
	if resolvePlayerHits(ctx) {
		return
	}
	resolvePickups(ctx)
}

// resolveMissileHits lets each missile damage at most one enemy: the first
// intersecting one in spawn order. Destroyed enemies and spent missiles are
// marked and compacted after the pass so nothing is skipped.
func resolveMissileHits(ctx *tickContext) {
	p := &ctx.w.Player
	enemies := ctx.w.Enemies
	if len(enemies) == 0 || len(p.Missiles) == 0 {
		return
	}

	dead := make([]bool, len(enemies))
	spent := make([]bool, len(p.Missiles))
	damaged := ctx.cfg.Effects.DamagedAlpha

	for i := range p.Missiles {
		m := &p.Missiles[i]
		for j := range enemies {
			if dead[j] {
				continue
			}
			e := &enemies[j]
			if !m.Intersects(e.Rect) {
				continue
			}
			spent[i] = true
			e.Health--
			e.Alpha = damaged
			ctx.record(enemyLabel(e), "combat", "hit", e.Kind.String(), float64(e.Health))
			if e.Health <= 0 {
				dead[j] = true
				p.Score += e.Points
				ctx.record(enemyLabel(e), "combat", "kill", e.Kind.String(), float64(e.Points))
			}
			break
		}
	}

	p.Missiles = compact(p.Missiles, spent)
	ctx.w.Enemies = compact(enemies, dead)
}

// resolvePlayerHits handles enemies ramming the player. Invincibility is
// re-checked per enemy, so the first survivable hit shields the player from
// the rest of the pass. Returns true when the hit ended the game.
func resolvePlayerHits(ctx *tickContext) bool {
	p := &ctx.w.Player
	enemies := ctx.w.Enemies
	removed := make([]bool, len(enemies))
	over := false

	for j := range enemies {
		if p.Invincible {
			break
		}
		e := &enemies[j]
		if !p.Intersects(e.Rect) {
			continue
		}
		removed[j] = true
		p.Lives--
		ctx.record(playerLabel, "player", "life_lost", e.Kind.String(), float64(p.Lives))
		if p.Lives <= 0 {
			p.Lives = 0
			over = true
			break
		}
		p.Invincible = true
		p.InvincibleFramesRemaining = ctx.cfg.Timers.InvincibleFrames
	}

	ctx.w.Enemies = compact(enemies, removed)
	if over {
		ctx.w.Phase = PhaseGameOver
		ctx.record(playerLabel, "state", "game_over", "", float64(p.Score))
	}
	return over
}

// resolvePickups applies and removes every power-up the player touches.
func resolvePickups(ctx *tickContext) {
	p := &ctx.w.Player
	taken := make([]bool, len(ctx.w.PowerUps))
	for i := range ctx.w.PowerUps {
		u := &ctx.w.PowerUps[i]
		if !p.Intersects(u.Rect) {
			continue
		}
		u.Kind.apply(p, ctx.cfg)
		taken[i] = true
		ctx.record(powerUpLabel(u), "pickup", u.Kind.String(), "", float64(p.Lives))
	}
	ctx.w.PowerUps = compact(ctx.w.PowerUps, taken)
}

// compact drops every element whose flag is set, preserving order.
func compact[T any](items []T, drop []bool) []T {
	kept := items[:0]
	for i, it := range items {
		if !drop[i] {
			kept = append(kept, it)
		}
	}
	return kept
}
