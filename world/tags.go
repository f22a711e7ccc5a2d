package world

import (
	"github.com/yohamta/donburi"

	"spaceshooter/combat"
)

// ECSTags answers tag membership straight from the entity store.
// Removed or recycled entities answer false for every tag.
type ECSTags struct {
	ECS donburi.World
}

var _ combat.TagOracle = ECSTags{}

func (t ECSTags) HasTag(h combat.Handle, k combat.Kind) bool {
	tag := tagFor(k)
	if tag == nil || t.ECS == nil {
		return false
	}
	e := entityOf(h)
	if !t.ECS.Valid(e) {
		return false
	}
	return t.ECS.Entry(e).HasComponent(tag)
}
