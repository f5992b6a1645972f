package game

import (
	"blob-arena-server/config"

	"github.com/google/uuid"
)

// replenishFood tops the food population back up to the configured constant
// after collision resolution removed eaten pellets. The count is exactly the
// target at the end of every tick.
func replenishFood(w *World) {
	for len(w.foods) < config.FOOD_COUNT {
		w.foods = append(w.foods, spawnFood(w))
	}
}

// spawnFood creates one pellet at a uniformly random world position.
func spawnFood(w *World) *Food {
	return &Food{
		ID: uuid.New().String(),
		Pos: Vector{
			X: w.rng.Float64() * w.Width,
			Y: w.rng.Float64() * w.Height,
		},
		Mass:   config.FOOD_MASS,
		Radius: RadiusForMass(config.FOOD_MASS),
		Color:  config.FoodColors[w.rng.Intn(len(config.FoodColors))],
	}
}
