package game

import (
	"math"

	"blob-arena-server/config"
)

// RadiusForMass maps a blob or pellet mass to its world radius.
// Strictly increasing, so larger mass always implies larger radius.
func RadiusForMass(mass float64) float64 {
	return math.Sqrt(mass/math.Pi) * 10
}

// Distance returns the Euclidean distance between two world points.
func Distance(a, b Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// MaxBlobsForMass is the hard ceiling on simultaneous pieces a single player
// may hold, tiered by the player's total mass.
func MaxBlobsForMass(mass float64) int {
	switch {
	case mass >= 240:
		return 16
	case mass >= 120:
		return 8
	case mass >= 60:
		return 4
	case mass >= config.MIN_SPLIT_MASS:
		return 2
	default:
		return 1
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
