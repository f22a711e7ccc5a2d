package world

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
	"go.uber.org/zap"

	"spaceshooter/combat"
)

var (
	playerQuery = query.NewQuery(filter.Contains(PlayerTag, TransformComponent))
	enemyQuery  = query.NewQuery(filter.Contains(EnemyTag, TransformComponent))
)

// spawnPlayer places the ship near the bottom centre, once per life
func (w *World) spawnPlayer() {
	if w.hasPlayer {
		return
	}
	p := w.cfg.Player
	y := -w.cfg.Playfield.HalfHeight() + p.SpawnOffset
	w.player = w.spawn(combat.KindPlayer,
		Transform{X: 0, Y: y},
		Velocity{},
		Body{Shape: ShapeRect, W: p.Width, H: p.Height},
	)
	w.hasPlayer = true
}

// steerPlayer sets the ship's velocity from the normalized input direction.
// Position is clamped to the playfield after integration.
func (w *World) steerPlayer(controls Controls) {
	if !w.hasPlayer || controls == nil {
		return
	}
	dx, dy := Normalize(controls.Movement())
	entry := w.ecs.Entry(w.player)
	VelocityComponent.SetValue(entry, Velocity{
		X: dx * w.cfg.Player.Speed,
		Y: dy * w.cfg.Player.Speed,
	})
}

// clampPlayer keeps the whole ship inside the playfield
func (w *World) clampPlayer() {
	if !w.hasPlayer {
		return
	}
	p := w.cfg.Player
	limitX := w.cfg.Playfield.HalfWidth() - p.Width/2
	limitY := w.cfg.Playfield.HalfHeight() - p.Height/2
	t := TransformComponent.Get(w.ecs.Entry(w.player))
	t.X = math.Max(-limitX, math.Min(t.X, limitX))
	t.Y = math.Max(-limitY, math.Min(t.Y, limitY))
}

// firePlayerBullet launches a bullet straight up from the ship's nose
func (w *World) firePlayerBullet() {
	x, y, ok := w.PlayerPosition()
	if !ok {
		return
	}
	b := w.cfg.Bullet
	w.spawn(combat.KindPlayerBullet,
		Transform{X: x, Y: y + w.cfg.Player.Height/2},
		Velocity{Y: b.Speed},
		Body{Shape: ShapeRect, W: b.Width, H: b.Height},
	)
}

// spawnEnemyWave drops a random number of enemies from the top edge. The
// centre lane is kept clear so a new wave never lands on the spawn point.
func (w *World) spawnEnemyWave() {
	e := w.cfg.Enemy
	hw := w.cfg.Playfield.HalfWidth()
	lane := w.cfg.Player.Width
	count := intBetween(w.rng, e.MinPerWave, e.MaxPerWave)

	for range count {
		var x float64
		if w.rng.IntN(2) == 0 {
			x = between(w.rng, -hw, -2*lane) + lane
		} else {
			x = between(w.rng, 2*lane, hw) - lane
		}
		w.spawn(combat.KindEnemy,
			Transform{X: x, Y: w.cfg.Playfield.HalfHeight()},
			Velocity{Y: -w.cfg.Player.Speed * e.SpeedFactor},
			Body{Shape: ShapeRect, W: e.Width, H: e.Height},
		)
	}
	if count > 0 {
		w.logger.Debug("enemy wave", zap.Int("count", count))
	}
}

// enemyVolley makes a few random enemies fire at the player. One volley
// sound is queued per round regardless of how many shooters fired.
func (w *World) enemyVolley() {
	px, py, ok := w.PlayerPosition()
	if !ok {
		return
	}
	var pv Velocity
	playerQuery.Each(w.ecs, func(entry *donburi.Entry) {
		pv = *VelocityComponent.Get(entry)
	})

	var shooters []Transform
	enemyQuery.Each(w.ecs, func(entry *donburi.Entry) {
		shooters = append(shooters, *TransformComponent.Get(entry))
	})
	if len(shooters) == 0 {
		return
	}

	e := w.cfg.Enemy
	b := w.cfg.Bullet
	speed := b.Speed * b.EnemySpeedFactor
	floor := -w.cfg.Playfield.Height * e.ShooterFloor
	n := intBetween(w.rng, 1, min(e.MaxShooters, len(shooters)))
	order := w.rng.Perm(len(shooters))

	for _, i := range order[:n] {
		s := shooters[i]
		if s.Y < floor {
			continue
		}
		sx, sy := s.X, s.Y-e.Height/2
		tx, ty := px, py
		if e.LeadTarget {
			tx, ty = PredictiveAim(sx, sy, px, py, pv.X, pv.Y, speed)
		}
		vx, vy := AimVelocity(sx, sy, tx, ty, speed)
		vx += between(w.rng, -b.Jitter, b.Jitter)
		vy += between(w.rng, -b.Jitter, b.Jitter)

		w.spawn(combat.KindEnemyBullet,
			Transform{X: sx, Y: sy, Rotation: math.Atan2(vy, vx)},
			Velocity{X: vx, Y: vy},
			Body{Shape: ShapeRect, W: b.Width, H: b.Height},
		)
	}
	w.PlaySound(combat.SoundVolley)
}

// spawnDebris sends up to MaxPerWave rocks in from the top, left or right edge
func (w *World) spawnDebris() {
	d := w.cfg.Debris
	hw, hh := w.cfg.Playfield.HalfWidth(), w.cfg.Playfield.HalfHeight()
	count := intBetween(w.rng, 0, d.MaxPerWave)

	for range count {
		var t Transform
		var v Velocity
		switch w.rng.IntN(3) {
		case 0:
			t = Transform{X: between(w.rng, -hw, hw), Y: hh + d.SpawnMargin}
			v = Velocity{X: between(w.rng, -d.Drift, d.Drift), Y: -between(w.rng, d.MinSpeed, d.MaxSpeed)}
		case 1:
			t = Transform{X: -hw - d.SpawnMargin, Y: between(w.rng, -hh, hh)}
			v = Velocity{X: between(w.rng, d.MinSpeed, d.MaxSpeed), Y: between(w.rng, -d.Drift, d.Drift)}
		default:
			t = Transform{X: hw + d.SpawnMargin, Y: between(w.rng, -hh, hh)}
			v = Velocity{X: -between(w.rng, d.MinSpeed, d.MaxSpeed), Y: between(w.rng, -d.Drift, d.Drift)}
		}
		t.Scale = between(w.rng, d.MinScale, d.MaxScale)
		v.Angular = between(w.rng, -d.MaxSpin, d.MaxSpin)

		w.spawn(combat.KindDebris, t, v, Body{Shape: ShapeCircle, Radius: d.BaseRadius * t.Scale})
	}
	if count > 0 {
		w.logger.Debug("debris wave", zap.Int("count", count))
	}
}

// integrate applies velocities for one step
func (w *World) integrate(dt float64) {
	query.NewQuery(filter.Contains(TransformComponent, VelocityComponent)).Each(w.ecs, func(entry *donburi.Entry) {
		t := TransformComponent.Get(entry)
		v := VelocityComponent.Get(entry)
		t.X += v.X * dt
		t.Y += v.Y * dt
		t.Rotation += v.Angular * dt
	})
	w.clampPlayer()
}
