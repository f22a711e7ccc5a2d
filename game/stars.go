package game

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type star struct {
	x, y  float64
	speed float64 // screen pixels per second
	size  float64
}

// Starfield scrolls background stars down the screen for a sense of forward
// motion. Stars leaving the bottom wrap to the top.
type Starfield struct {
	stars         []star
	width, height float64
}

// NewStarfield scatters n stars over a width x height screen
func NewStarfield(n int, width, height float64, rng *rand.Rand) *Starfield {
	s := &Starfield{stars: make([]star, n), width: width, height: height}
	for i := range s.stars {
		// slow stars are small and far away
		depth := rng.Float64()
		s.stars[i] = star{
			x:     rng.Float64() * width,
			y:     rng.Float64() * height,
			speed: 20 + depth*120,
			size:  0.5 + depth*1.5,
		}
	}
	return s
}

// Update moves every star by dt seconds
func (s *Starfield) Update(dt float64) {
	for i := range s.stars {
		s.stars[i].y += s.stars[i].speed * dt
		if s.stars[i].y > s.height {
			s.stars[i].y -= s.height
		}
	}
}

// Draw paints the stars
func (s *Starfield) Draw(screen *ebiten.Image) {
	for _, st := range s.stars {
		shade := uint8(90 + st.size*70)
		vector.DrawFilledCircle(screen, float32(st.x), float32(st.y), float32(st.size), color.RGBA{shade, shade, shade, 255}, false)
	}
}
