package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spaceshooter/combat"
	"spaceshooter/world"
)

// Camera maps the centered, y-up playfield onto the screen
type Camera struct {
	Zoom   float64 // screen pixels per world unit
	Width  float64 // viewport width
	Height float64 // viewport height
}

// NewCamera fits a playfield of fieldW x fieldH into the viewport
func NewCamera(width, height, fieldW, fieldH float64) *Camera {
	return &Camera{
		Zoom:   math.Min(width/fieldW, height/fieldH),
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return c.Width/2 + wx*c.Zoom, c.Height/2 - wy*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.Width/2) / c.Zoom, (c.Height/2 - sy) / c.Zoom
}

// Renderer draws world objects as flat shapes
type Renderer struct {
	camera *Camera
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{camera: camera}
}

// Render draws every object. Colliders adds outlines of the collision shapes.
func (r *Renderer) Render(screen *ebiten.Image, objects []world.Object, colliders bool) {
	for _, o := range objects {
		r.RenderObject(screen, o)
	}
	if colliders {
		for _, o := range objects {
			r.renderCollider(screen, o)
		}
	}
}

// RenderObject draws a single object
func (r *Renderer) RenderObject(screen *ebiten.Image, o world.Object) {
	z := r.camera.Zoom
	sx, sy := r.camera.WorldToScreen(o.X, o.Y)
	margin := 100.0
	if sx < -margin || sx > r.camera.Width+margin ||
		sy < -margin || sy > r.camera.Height+margin {
		return
	}
	clr := KindColor(o.Kind)

	switch o.Kind {
	case combat.KindEnemyBullet:
		// aimed shots are drawn along their heading; screen y is flipped
		half := o.H / 2 * z
		dx, dy := math.Cos(o.Rotation)*half, -math.Sin(o.Rotation)*half
		vector.StrokeLine(screen, float32(sx-dx), float32(sy-dy), float32(sx+dx), float32(sy+dy), float32(o.W*z), clr, true)
	case combat.KindDebris:
		radius := math.Max(o.Radius*z, 1)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
		// spoke shows the spin
		ex, ey := sx+math.Cos(o.Rotation)*radius, sy-math.Sin(o.Rotation)*radius
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, color.RGBA{90, 85, 80, 255}, true)
	default:
		w, h := o.W*z, o.H*z
		vector.DrawFilledRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), clr, true)
		if o.Kind == combat.KindPlayer {
			// nose
			vector.StrokeLine(screen, float32(sx), float32(sy-h/2), float32(sx), float32(sy-h), 3, clr, true)
		}
	}
}

func (r *Renderer) renderCollider(screen *ebiten.Image, o world.Object) {
	z := r.camera.Zoom
	sx, sy := r.camera.WorldToScreen(o.X, o.Y)
	outline := color.RGBA{255, 255, 255, 160}
	if o.Shape == world.ShapeCircle {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(o.Radius*z), 1, outline, true)
		return
	}
	w, h := o.W*z, o.H*z
	vector.StrokeRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), 1, outline, true)
}

// RenderPlayfield outlines the playfield rectangle
func (r *Renderer) RenderPlayfield(screen *ebiten.Image, fieldW, fieldH float64) {
	x0, y0 := r.camera.WorldToScreen(-fieldW/2, fieldH/2)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(fieldW*r.camera.Zoom), float32(fieldH*r.camera.Zoom), 1, color.RGBA{60, 60, 90, 255}, true)
}
