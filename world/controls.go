package world

import "math"

// Controls is what the player asks for during one step
type Controls interface {
	// Movement returns the desired direction. Any length is accepted;
	// the world normalizes it.
	Movement() (x, y float64)

	// Firing reports whether the fire button is held
	Firing() bool
}

// StaticControls is a fixed input, used by tests and demos
type StaticControls struct {
	X, Y float64
	Fire bool
}

func (c StaticControls) Movement() (float64, float64) { return c.X, c.Y }

func (c StaticControls) Firing() bool { return c.Fire }

// Timer fires every Interval seconds of accumulated time. Several intervals
// elapsed in one tick still fire once.
type Timer struct {
	Interval float64
	elapsed  float64
}

// NewTimer creates a repeating timer
func NewTimer(interval float64) Timer {
	return Timer{Interval: interval}
}

// Tick advances the timer and reports whether an interval finished
func (t *Timer) Tick(dt float64) bool {
	if t.Interval <= 0 {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.Interval {
		return false
	}
	t.elapsed = math.Mod(t.elapsed, t.Interval)
	if math.IsNaN(t.elapsed) {
		t.elapsed = 0
	}
	return true
}

// Reset restarts the interval
func (t *Timer) Reset() {
	t.elapsed = 0
}
