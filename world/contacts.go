package world

import (
	"slices"

	"spaceshooter/combat"
)

// ContactTracker turns per-step overlap sets into contact lifecycle events
type ContactTracker struct {
	active map[Pair]struct{}
	next   map[Pair]struct{}
}

// NewContactTracker creates an empty tracker
func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		active: make(map[Pair]struct{}),
		next:   make(map[Pair]struct{}),
	}
}

// Update compares the current overlaps with the previous step. Began and
// persisting events follow the order of pairs; ended events come last,
// sorted.
func (t *ContactTracker) Update(pairs []Pair) []combat.OverlapEvent {
	events := make([]combat.OverlapEvent, 0, len(pairs))
	clear(t.next)
	for _, p := range pairs {
		if _, dup := t.next[p]; dup {
			continue
		}
		t.next[p] = struct{}{}
		phase := combat.ContactBegan
		if _, ok := t.active[p]; ok {
			phase = combat.ContactPersisting
		}
		events = append(events, combat.OverlapEvent{A: p.A, B: p.B, Phase: phase})
	}

	var ended []Pair
	for p := range t.active {
		if _, ok := t.next[p]; !ok {
			ended = append(ended, p)
		}
	}
	slices.SortFunc(ended, comparePairs)
	for _, p := range ended {
		events = append(events, combat.OverlapEvent{A: p.A, B: p.B, Phase: combat.ContactEnded})
	}

	t.active, t.next = t.next, t.active
	return events
}

// Forget drops every contact involving h so a recycled handle starts fresh
func (t *ContactTracker) Forget(h combat.Handle) {
	for p := range t.active {
		if p.Has(h) {
			delete(t.active, p)
		}
	}
}

// Active returns the number of pairs currently in contact
func (t *ContactTracker) Active() int {
	return len(t.active)
}

// Reset forgets every contact
func (t *ContactTracker) Reset() {
	clear(t.active)
	clear(t.next)
}
