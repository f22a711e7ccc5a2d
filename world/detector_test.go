package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaceshooter/combat"
)

func handleFromInt(h uint64) combat.Handle { return combat.Handle(h) }

var testBounds = Bounds{MinX: -756, MinY: -756, MaxX: 756, MaxY: 756}

func detectors() map[string]Detector {
	return map[string]Detector{
		"space": NewSpaceDetector(testBounds, 64),
		"grid":  NewGridDetector(testBounds, 64, 3),
	}
}

func sampleObjects() []Object {
	return []Object{
		rect(1, 0, -400, 40, 40),     // player
		rect(2, 10, -380, 40, 40),    // enemy touching the player
		rect(3, 300, 300, 40, 40),    // lone enemy
		rect(4, 300, 285, 4, 15),     // bullet entering the lone enemy
		circle(5, -200, 0, 48),       // large debris spanning several cells
		rect(6, -160, 10, 4, 15),     // bullet inside the debris
		rect(7, -200, 200, 4, 15),    // bullet in the open
		circle(8, 620, -600, 20),     // debris outside the playfield
		rect(9, 640, -600, 4, 15),    // bullet outside the playfield
		rect(10, -400, -400, 40, 40), // far away
		circle(11, -200, -60, 20),    // second debris overlapping the first
	}
}

func TestDetectorsFindSamePairs(t *testing.T) {
	want := []Pair{{1, 2}, {3, 4}, {5, 6}, {5, 11}, {8, 9}}
	for name, d := range detectors() {
		t.Run(name, func(t *testing.T) {
			pairs, err := d.Detect(context.Background(), sampleObjects())
			require.NoError(t, err)
			assert.Equal(t, want, pairs)
		})
	}
}

func TestDetectorsFindContainedShapes(t *testing.T) {
	objects := []Object{
		rect(1, 0, -400, 40, 40),  // player
		rect(2, 0, -395, 4, 15),   // enemy bullet inside the player
		rect(3, 200, 100, 40, 40), // enemy
		rect(4, 200, 100, 4, 15),  // bullet inside the enemy
		circle(5, -200, 0, 48),    // debris
		circle(6, -200, 0, 10),    // small debris inside it
	}
	want := []Pair{{1, 2}, {3, 4}, {5, 6}}
	for name, d := range detectors() {
		t.Run(name, func(t *testing.T) {
			pairs, err := d.Detect(context.Background(), objects)
			require.NoError(t, err)
			assert.Equal(t, want, pairs)
		})
	}
}

func TestDetectorsEmptyBatch(t *testing.T) {
	for name, d := range detectors() {
		t.Run(name, func(t *testing.T) {
			pairs, err := d.Detect(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, pairs)
		})
	}
}

func TestDetectorsHonourCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, d := range detectors() {
		t.Run(name, func(t *testing.T) {
			_, err := d.Detect(ctx, sampleObjects())
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestGridDetectorIsReusable(t *testing.T) {
	d := NewGridDetector(testBounds, 64, 2)
	first, err := d.Detect(context.Background(), sampleObjects())
	require.NoError(t, err)

	second, err := d.Detect(context.Background(), sampleObjects()[:2])
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 2}}, second, "cells are cleared between calls")
	assert.NotEqual(t, first, second)
}

func TestGridInsertSpansCells(t *testing.T) {
	g := NewGrid(0, 0, 256, 256, 64)
	g.Insert(0, 60, 60, 70, 70)
	g.Insert(1, 10, 10, 20, 20)
	assert.Len(t, g.Occupied(), 4, "box across a corner lands in four cells")

	cx, cy := g.CellAt(-50, 999)
	assert.Equal(t, 0, cx, "coordinates clamp to the grid")
	assert.Equal(t, 4, cy)

	g.Clear()
	assert.Empty(t, g.Occupied())
}
