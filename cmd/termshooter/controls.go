package main

import (
	"time"

	"spaceshooter/world"
)

// holdTime is how long a key press counts as held. Terminals report
// presses and repeats but never releases.
const holdTime = 150 * time.Millisecond

// latchControls turns key press events into held controls
type latchControls struct {
	now func() time.Time

	dx, dy    float64
	moveUntil time.Time
	fireUntil time.Time
}

var _ world.Controls = (*latchControls)(nil)

func newLatchControls(now func() time.Time) *latchControls {
	return &latchControls{now: now}
}

// press holds a direction. A perpendicular press within the hold time
// combines into a diagonal.
func (c *latchControls) press(dx, dy float64) {
	t := c.now()
	if t.After(c.moveUntil) {
		c.dx, c.dy = 0, 0
	}
	if dx != 0 {
		c.dx = dx
	}
	if dy != 0 {
		c.dy = dy
	}
	c.moveUntil = t.Add(holdTime)
}

func (c *latchControls) fire() {
	c.fireUntil = c.now().Add(holdTime)
}

func (c *latchControls) Movement() (float64, float64) {
	if c.now().After(c.moveUntil) {
		return 0, 0
	}
	return c.dx, c.dy
}

func (c *latchControls) Firing() bool {
	return !c.now().After(c.fireUntil)
}
