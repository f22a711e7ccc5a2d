package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spaceshooter/world"
)

// KeyboardControls reads arrow keys or WASD for movement and Space to fire
type KeyboardControls struct{}

var _ world.Controls = KeyboardControls{}

// Movement returns the pressed direction in world coordinates (y up)
func (KeyboardControls) Movement() (float64, float64) {
	var x, y float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		x--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		x++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		y--
	}
	return x, y
}

// Firing reports whether Space is held
func (KeyboardControls) Firing() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace)
}

// justPressed reports whether any of keys went down this tick
func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
