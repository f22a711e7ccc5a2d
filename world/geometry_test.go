package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rect(h uint64, x, y, w, hgt float64) Object {
	return Object{Handle: handleFromInt(h), Transform: Transform{X: x, Y: y}, Body: Body{Shape: ShapeRect, W: w, H: hgt}}
}

func circle(h uint64, x, y, r float64) Object {
	return Object{Handle: handleFromInt(h), Transform: Transform{X: x, Y: y}, Body: Body{Shape: ShapeCircle, Radius: r}}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Object
		want bool
	}{
		{"rects overlap", rect(1, 0, 0, 40, 40), rect(2, 30, 10, 40, 40), true},
		{"rects apart", rect(1, 0, 0, 40, 40), rect(2, 100, 0, 40, 40), false},
		{"rects touching", rect(1, 0, 0, 40, 40), rect(2, 40, 0, 40, 40), false},
		{"circles overlap", circle(1, 0, 0, 10), circle(2, 15, 0, 10), true},
		{"circles apart", circle(1, 0, 0, 10), circle(2, 25, 0, 10), false},
		{"circle in rect corner", circle(1, 25, 25, 8), rect(2, 0, 0, 40, 40), true},
		{"circle past rect corner", circle(1, 28, 28, 8), rect(2, 0, 0, 40, 40), false},
		{"rect then circle", rect(1, 0, 0, 4, 15), circle(2, 0, 20, 14), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap test is symmetric")
		})
	}
}

func TestMakePairOrders(t *testing.T) {
	p := MakePair(9, 3)
	assert.Equal(t, Pair{A: 3, B: 9}, p)
	assert.True(t, p.Has(9))
	assert.False(t, p.Has(4))
}

func TestPredictiveAim(t *testing.T) {
	x, y := PredictiveAim(0, 0, 100, 0, 0, 0, 300)
	assert.Equal(t, 100.0, x, "stationary target is aimed at directly")
	assert.Equal(t, 0.0, y)

	x, y = PredictiveAim(0, 0, 300, 0, 0, 100, 300)
	assert.Equal(t, 300.0, x)
	assert.Greater(t, y, 0.0, "lead is in the direction of travel")
}

func TestAimVelocity(t *testing.T) {
	vx, vy := AimVelocity(0, 0, 0, -10, 300)
	assert.InDelta(t, 0, vx, 1e-9)
	assert.InDelta(t, -300, vy, 1e-9)

	vx, vy = AimVelocity(5, 5, 5, 5, 300)
	assert.Equal(t, 0.0, vx)
	assert.Equal(t, -300.0, vy, "coincident points fire straight down")
}
