package world

import "spaceshooter/combat"

// Pair is an unordered overlap between two objects, stored with A < B
type Pair struct {
	A, B combat.Handle
}

// MakePair orders the handles
func MakePair(a, b combat.Handle) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Has reports whether h is a member of the pair
func (p Pair) Has(h combat.Handle) bool {
	return p.A == h || p.B == h
}

func comparePairs(x, y Pair) int {
	switch {
	case x.A < y.A:
		return -1
	case x.A > y.A:
		return 1
	case x.B < y.B:
		return -1
	case x.B > y.B:
		return 1
	default:
		return 0
	}
}

// Overlaps is the narrow phase test between two colliders.
// Touching edges do not count as overlap.
func Overlaps(a, b Object) bool {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		dx := a.X - b.X
		dy := a.Y - b.Y
		r := a.Radius + b.Radius
		return dx*dx+dy*dy < r*r
	case a.Shape == ShapeCircle:
		return circleRect(a, b)
	case b.Shape == ShapeCircle:
		return circleRect(b, a)
	default:
		aMinX, aMinY, aMaxX, aMaxY := a.Bounds()
		bMinX, bMinY, bMaxX, bMaxY := b.Bounds()
		return aMinX < bMaxX && bMinX < aMaxX && aMinY < bMaxY && bMinY < aMaxY
	}
}

func circleRect(c, r Object) bool {
	minX, minY, maxX, maxY := r.Bounds()
	nx := max(minX, min(c.X, maxX))
	ny := max(minY, min(c.Y, maxY))
	dx := c.X - nx
	dy := c.Y - ny
	return dx*dx+dy*dy < c.Radius*c.Radius
}
