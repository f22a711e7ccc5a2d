package game

import (
	"image/color"

	"spaceshooter/combat"
)

// FactionColors holds the base color for each faction
var FactionColors = map[combat.Faction]color.RGBA{
	combat.FactionPlayer:  {0, 255, 0, 255},     // green
	combat.FactionEnemy:   {255, 0, 0, 255},     // red
	combat.FactionNeutral: {150, 140, 130, 255}, // rock grey
}

// KindColor returns the draw color for an object kind. Projectiles use a
// brighter shade than the ships that fire them.
func KindColor(k combat.Kind) color.RGBA {
	switch k {
	case combat.KindPlayerBullet:
		return color.RGBA{255, 255, 0, 255} // yellow
	case combat.KindEnemyBullet:
		return color.RGBA{255, 100, 0, 255} // orange
	}
	if c, ok := FactionColors[k.Faction()]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}
