package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"spaceshooter/combat"
)

var (
	hudFace    = text.NewGoXFace(basicfont.Face7x13)
	hudColor   = color.RGBA{255, 255, 255, 255}
	dimColor   = color.RGBA{170, 170, 170, 255}
	titleScale = 4.0
)

const hudMargin = 20.0

// drawText draws s with its top-left corner at (x, y)
func drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, hudFace, op)
}

// drawCentered draws s horizontally centered at y
func drawCentered(screen *ebiten.Image, s string, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, hudFace, 0)
	x := (float64(screen.Bounds().Dx()) - w*scale) / 2
	drawText(screen, s, x, y, scale, clr)
}

// drawHUD shows score top-left and health top-right
func drawHUD(screen *ebiten.Image, snap combat.Snapshot) {
	drawText(screen, fmt.Sprintf("Score: %d", snap.Score), hudMargin, hudMargin, 2, hudColor)

	label := fmt.Sprintf("Health: %d", snap.Health)
	w, _ := text.Measure(label, hudFace, 0)
	right := float64(screen.Bounds().Dx()) - hudMargin
	drawText(screen, label, right-w*2, hudMargin, 2, hudColor)

	if snap.MaxHealth > 0 {
		barW := 120.0
		frac := min(1, float64(snap.Health)/float64(snap.MaxHealth))
		y := hudMargin + 32
		vector.DrawFilledRect(screen, float32(right-barW), float32(y), float32(barW), 6, color.RGBA{100, 0, 0, 255}, true)
		vector.DrawFilledRect(screen, float32(right-barW), float32(y), float32(barW*frac), 6, color.RGBA{0, 255, 0, 255}, true)
	}
}

// drawOverlay dims the screen under a menu
func drawOverlay(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{0, 0, 0, 180}, false)
}

// drawMenu draws a title and a list of prompts in the middle of the screen
func drawMenu(screen *ebiten.Image, title string, lines ...string) {
	y := float64(screen.Bounds().Dy())/2 - 120
	drawCentered(screen, title, y, titleScale, hudColor)
	y += 100
	for _, l := range lines {
		drawCentered(screen, l, y, 2, dimColor)
		y += 36
	}
}
