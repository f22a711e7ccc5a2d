package world

import (
	"github.com/yohamta/donburi"

	"spaceshooter/combat"
)

// Transform is position in centered y-up world coordinates
type Transform struct {
	X, Y float64

	// Rotation in radians
	Rotation float64

	Scale float64
}

// Velocity in units per second
type Velocity struct {
	X, Y float64

	// Angular velocity in radians per second
	Angular float64
}

// ShapeKind selects the collider geometry
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Body is the collider. Rectangles are axis aligned and centered on the transform.
type Body struct {
	Shape  ShapeKind
	W, H   float64
	Radius float64
}

// HalfExtents returns the half size of the body's bounding box
func (b Body) HalfExtents() (float64, float64) {
	if b.Shape == ShapeCircle {
		return b.Radius, b.Radius
	}
	return b.W / 2, b.H / 2
}

// Tag marks an entity with one collision kind
type Tag struct{}

var (
	TransformComponent = donburi.NewComponentType[Transform]()
	VelocityComponent  = donburi.NewComponentType[Velocity]()
	BodyComponent      = donburi.NewComponentType[Body]()

	PlayerTag       = donburi.NewComponentType[Tag]()
	EnemyTag        = donburi.NewComponentType[Tag]()
	PlayerBulletTag = donburi.NewComponentType[Tag]()
	EnemyBulletTag  = donburi.NewComponentType[Tag]()
	DebrisTag       = donburi.NewComponentType[Tag]()
)

// tagFor returns the tag component for a kind, or nil for KindUnknown
func tagFor(k combat.Kind) donburi.IComponentType {
	switch k {
	case combat.KindPlayer:
		return PlayerTag
	case combat.KindEnemy:
		return EnemyTag
	case combat.KindPlayerBullet:
		return PlayerBulletTag
	case combat.KindEnemyBullet:
		return EnemyBulletTag
	case combat.KindDebris:
		return DebrisTag
	default:
		return nil
	}
}

// Object is a read-only view of one live entity, used by detectors and renderers
type Object struct {
	Handle combat.Handle
	Kind   combat.Kind
	Transform
	Body
}

// Bounds returns the axis aligned bounding box
func (o Object) Bounds() (minX, minY, maxX, maxY float64) {
	hw, hh := o.HalfExtents()
	return o.X - hw, o.Y - hh, o.X + hw, o.Y + hh
}

func handleOf(e donburi.Entity) combat.Handle {
	return combat.Handle(e)
}

func entityOf(h combat.Handle) donburi.Entity {
	return donburi.Entity(h)
}
