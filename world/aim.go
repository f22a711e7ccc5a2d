package world

import "math"

// PredictiveAim calculates where to aim so a projectile of the given speed
// meets a target moving at constant velocity
func PredictiveAim(shooterX, shooterY, targetX, targetY, targetVX, targetVY, projectileSpeed float64) (predictedX, predictedY float64) {
	dx := targetX - shooterX
	dy := targetY - shooterY

	// Stationary target
	if math.Abs(targetVX) < 0.1 && math.Abs(targetVY) < 0.1 {
		return targetX, targetY
	}

	distance := math.Hypot(dx, dy)
	if distance < 1.0 || projectileSpeed <= 0 {
		return targetX, targetY
	}

	// Find t with |target + v*t - shooter| = speed*t by fixed point iteration,
	// starting from the time to reach the current position
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		px := targetX + targetVX*t - shooterX
		py := targetY + targetVY*t - shooterY
		newT := math.Hypot(px, py) / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			t = newT
			break
		}
		t = newT
	}

	return targetX + targetVX*t, targetY + targetVY*t
}

// AimVelocity returns a velocity of the given speed pointing from one point to another
func AimVelocity(fromX, fromY, toX, toY, speed float64) (vx, vy float64) {
	dx := toX - fromX
	dy := toY - fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, -speed
	}
	return dx / dist * speed, dy / dist * speed
}

// Normalize returns the unit vector of (x, y), or zero for the zero vector
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
