package game

// Rand is the randomness source. *math/rand.Rand satisfies it; tests inject
// scripted sequences.
type Rand interface {
	Float64() float64
}

// spawnAll is the spawn phase: at most one enemy and, independently, at
// most one power-up per tick.
//
// Draw order is fixed so scripted sources stay reproducible:
//
//	enemy gate, [kind, (special split), x], power-up gate, [kind, x]
func spawnAll(ctx *tickContext) {
	sp := ctx.cfg.Spawn
	if ctx.rng.Float64() < sp.EnemySpawnRate {
		k := pickEnemyKind(ctx.rng, sp)
		s := k.Spec()
		x := spawnColumn(ctx.rng, ctx.w.Width, s.Width)
		e := newEnemy(ctx.newID(), k, x, -s.Height)
		ctx.w.Enemies = append(ctx.w.Enemies, e)
		ctx.record(enemyLabel(&e), "spawn", "enemy", k.String(), x)
	}

	if ctx.rng.Float64() < sp.PowerUpChance {
		k := pickPowerUpKind(ctx.rng, sp)
		pu := ctx.cfg.PowerUp
		x := spawnColumn(ctx.rng, ctx.w.Width, pu.Width)
		u := PowerUp{
			Rect:  Rect{X: x, Y: -pu.Height, W: pu.Width, H: pu.Height},
			ID:    ctx.newID(),
			Kind:  k,
			Speed: pu.Speed,
			Color: k.Color(),
		}
		ctx.w.PowerUps = append(ctx.w.PowerUps, u)
		ctx.record(powerUpLabel(&u), "spawn", "power_up", k.String(), x)
	}
}

// pickEnemyKind maps one draw onto three disjoint bands:
// [0,boss) boss, [boss,special) fast or zigzag, [special,1) basic.
func pickEnemyKind(rng Rand, sp SpawnSettings) EnemyKind {
	c := rng.Float64()
	switch {
	case c < sp.BossChance:
		return EnemyBoss
	case c < sp.SpecialChance:
		if rng.Float64() < 0.5 {
			return EnemyFast
		}
		return EnemyZigzag
	default:
		return EnemyBasic
	}
}

func pickPowerUpKind(rng Rand, sp SpawnSettings) PowerUpKind {
	if rng.Float64() > sp.LifeThreshold {
		return PowerUpLife
	}
	return PowerUpWeapon
}

// spawnColumn draws x uniformly in [0, boardW-w], clamped in case the source
// misbehaves or the entity is wider than the board.
func spawnColumn(rng Rand, boardW, w float64) float64 {
	span := boardW - w
	return clamp(rng.Float64()*span, 0, span)
}

// seedStars scatters the backdrop across the whole board.
func seedStars(rng Rand, cfg StarSettings, width, height float64) []Star {
	stars := make([]Star, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		stars = append(stars, Star{
			X:     rng.Float64() * width,
			Y:     rng.Float64() * height,
			Size:  cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize),
			Speed: cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed),
		})
	}
	return stars
}
