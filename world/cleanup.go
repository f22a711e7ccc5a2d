package world

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"spaceshooter/combat"
)

// cleanupRule reaps objects of one tag whose centre leaves the box
// ±(HalfWidth+MarginX, HalfHeight+MarginY). A negative margin disables an axis.
type cleanupRule struct {
	query            *query.Query
	marginX, marginY float64
}

func (w *World) cleanupRules() []cleanupRule {
	bullet := w.cfg.Bullet.CleanupMargin
	return []cleanupRule{
		{query.NewQuery(filter.Contains(PlayerBulletTag, TransformComponent)), bullet, bullet},
		{query.NewQuery(filter.Contains(EnemyBulletTag, TransformComponent)), bullet, bullet},
		{query.NewQuery(filter.Contains(EnemyTag, TransformComponent)), -1, w.cfg.Enemy.CleanupMargin},
		{query.NewQuery(filter.Contains(DebrisTag, TransformComponent)), w.cfg.Debris.CleanupMargin, w.cfg.Debris.CleanupMargin},
	}
}

// cleanup removes objects that left the playfield and returns how many.
// It runs after resolution and never looks at collision outcomes.
func (w *World) cleanup() int {
	hw, hh := w.cfg.Playfield.HalfWidth(), w.cfg.Playfield.HalfHeight()

	var gone []combat.Handle
	for _, r := range w.cleanupRules() {
		r.query.Each(w.ecs, func(entry *donburi.Entry) {
			t := TransformComponent.Get(entry)
			if (r.marginX >= 0 && math.Abs(t.X) > hw+r.marginX) ||
				(r.marginY >= 0 && math.Abs(t.Y) > hh+r.marginY) {
				gone = append(gone, handleOf(entry.Entity()))
			}
		})
	}

	for _, h := range gone {
		w.Remove(h)
	}
	return len(gone)
}
