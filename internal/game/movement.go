package game

// moveAll is the movement phase of a tick.
func moveAll(ctx *tickContext) {
	movePlayer(ctx)
	moveMissiles(ctx)
	moveEnemies(ctx)
	movePowerUps(ctx)
	moveStars(ctx)
}

// movePlayer steps the craft along each held axis and clamps it to the board.
func movePlayer(ctx *tickContext) {
	p := &ctx.w.Player
	in := ctx.w.Input
	speed := ctx.cfg.Player.Speed

	if in.Held(KeyLeft) {
		p.X -= speed
	}
	if in.Held(KeyRight) {
		p.X += speed
	}
	if in.Held(KeyUp) {
		p.Y -= speed
	}
	if in.Held(KeyDown) {
		p.Y += speed
	}
	p.X = clamp(p.X, 0, ctx.w.Width-p.W)
	p.Y = clamp(p.Y, 0, ctx.w.Height-p.H)

	ctx.log.AddVerbose(ctx.w.Tick, playerLabel, "player", "position", formatPos(p.X, p.Y), 0)
}

func moveMissiles(ctx *tickContext) {
	p := &ctx.w.Player
	kept := p.Missiles[:0]
	for _, m := range p.Missiles {
		m.Y -= m.Speed
		if m.Y < 0 {
			continue
		}
		kept = append(kept, m)
	}
	p.Missiles = kept
}

// moveEnemies applies each kind's motion rule, recovers the damage flash and
// drops enemies that fell past the bottom edge. Escapes award nothing.
// Oscillating kinds may drift past the side edges; only the bottom edge
// removes an enemy.
func moveEnemies(ctx *tickContext) {
	recovery := ctx.cfg.Effects.AlphaRecovery
	kept := ctx.w.Enemies[:0]
	for _, e := range ctx.w.Enemies {
		e.X, e.Y = e.Kind.advance(e.X, e.Y, ctx.cfg.EnemySpeed.For(e.Kind))

		if e.Alpha < 1 {
			e.Alpha += recovery
			if e.Alpha > 1 {
				e.Alpha = 1
			}
		}

		if e.Y > ctx.w.Height {
			ctx.record(enemyLabel(&e), "combat", "escaped", e.Kind.String(), float64(e.Points))
			continue
		}
		kept = append(kept, e)
	}
	ctx.w.Enemies = kept
}

func movePowerUps(ctx *tickContext) {
	kept := ctx.w.PowerUps[:0]
	for _, u := range ctx.w.PowerUps {
		u.Y += u.Speed
		if u.Y > ctx.w.Height {
			ctx.record(powerUpLabel(&u), "pickup", "missed", u.Kind.String(), 0)
			continue
		}
		kept = append(kept, u)
	}
	ctx.w.PowerUps = kept
}

// moveStars scrolls the backdrop. A star leaving the bottom re-enters at the
// top with a fresh column.
func moveStars(ctx *tickContext) {
	for i := range ctx.w.Stars {
		s := &ctx.w.Stars[i]
		s.Y += s.Speed
		if s.Y > ctx.w.Height {
			s.Y = 0
			s.X = ctx.rng.Float64() * ctx.w.Width
		}
	}
}

// clamp pins v into [lo, hi]. When the range is empty (hi < lo) lo wins.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
