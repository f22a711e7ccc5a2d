package game

// DebugState holds debug overlay flags that persist across runs
type DebugState struct {
	ShowColliders bool // collider outlines, playfield border and step stats
}

// Toggle flips the collider overlay
func (d *DebugState) Toggle() {
	d.ShowColliders = !d.ShowColliders
}
