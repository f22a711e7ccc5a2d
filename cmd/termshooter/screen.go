package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"spaceshooter/combat"
	"spaceshooter/config"
	"spaceshooter/world"
)

var glyphs = map[combat.Kind]struct {
	r     rune
	style tcell.Style
}{
	combat.KindPlayer:       {'A', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	combat.KindEnemy:        {'V', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	combat.KindPlayerBullet: {'|', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	combat.KindEnemyBullet:  {'*', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	combat.KindDebris:       {'O', tcell.StyleDefault.Foreground(tcell.ColorGray)},
}

// cellFor maps a world position onto a cols x rows grid. ok is false for
// positions outside the playfield.
func cellFor(x, y float64, field config.PlayfieldConfig, cols, rows int) (cx, cy int, ok bool) {
	u := (x + field.HalfWidth()) / field.Width
	v := (field.HalfHeight() - y) / field.Height
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return 0, 0, false
	}
	return int(math.Floor(u * float64(cols))), int(math.Floor(v * float64(rows))), true
}

// draw paints objects over the playfield and a status line at the bottom
func draw(s tcell.Screen, objects []world.Object, field config.PlayfieldConfig, status string) {
	s.Clear()
	cols, rows := s.Size()
	rows-- // status line

	// debris first so ships and bullets stay visible on top
	for _, pass := range []bool{true, false} {
		for _, o := range objects {
			if (o.Kind == combat.KindDebris) != pass {
				continue
			}
			g, ok := glyphs[o.Kind]
			if !ok {
				continue
			}
			if cx, cy, ok := cellFor(o.X, o.Y, field, cols, rows); ok {
				s.SetContent(cx, cy, g.r, nil, g.style)
			}
		}
	}
	drawString(s, 0, rows, status, tcell.StyleDefault.Reverse(true))
	s.Show()
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func statusLine(snap combat.Snapshot, paused, over bool) string {
	line := fmt.Sprintf(" Score: %d  Health: %d ", snap.Score, snap.Health)
	switch {
	case over:
		line += " GAME OVER  enter: replay  esc: quit "
	case paused:
		line += " PAUSED  p: resume "
	default:
		line += " arrows/wasd: move  space: fire  p: pause  esc: quit "
	}
	return line
}
