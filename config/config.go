package config

import "time"

// Arena World Dimensions
const (
	WORLD_WIDTH  = 2000.0 // Arena world width in world units
	WORLD_HEIGHT = 2000.0 // Arena world height in world units
)

// Mass Economy
const (
	START_MASS     = 20.0 // Mass of a player's first blob on join
	FOOD_MASS      = 1.0  // Fixed mass of a food pellet
	FOOD_COUNT     = 200  // Food population restored at the end of every tick
	MIN_SPLIT_MASS = 30.0 // Smallest blob mass that may split
)

// Movement Tuning
const (
	VELOCITY_DAMPING  = 0.98   // Isotropic damping applied after integration
	STEERING_LERP     = 0.15   // Blend factor from current toward desired velocity
	ORBIT_RING_MARGIN = 15.0   // Extra gap on the orbit circle around the main blob
	ORBIT_ROTATION    = 0.0005 // Orbit angle drift in radians per millisecond
)

// Split Tuning
const (
	SPLIT_EJECT_IMPULSE = 20.0             // Velocity impulse added to an ejected sibling
	SPLIT_OFFSET_FACTOR = 2.5              // Sibling offset as a multiple of post-split radius
	RECOMBINE_DELAY     = 25 * time.Second // Earliest same-owner merge after a split
)

// Engulfment Thresholds
const (
	ENGULF_MASS_RATIO   = 1.10 // Larger blob must exceed the smaller mass by this factor
	ENGULF_DEPTH_FACTOR = 0.5  // Half the smaller radius must be inside the larger blob
)

// Simulation Rate and Derived Views
const (
	GAME_TICK_INTERVAL = time.Second / 60 // Game state update interval (60 frames per second)
	LEADERBOARD_SIZE   = 10               // Leaderboard entries kept per tick
	MAX_CHAT_HISTORY   = 10               // Chat messages exposed in snapshots
)

// Color represents a simplified RGB representation.
// Clients interpret these values for rendering.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// BlobColors is the palette new players are assigned from.
var BlobColors = []Color{
	{R: 0, G: 121, B: 241, A: 255},
	{R: 230, G: 41, B: 55, A: 255},
	{R: 0, G: 158, B: 47, A: 255},
	{R: 255, G: 161, B: 0, A: 255},
	{R: 135, G: 60, B: 190, A: 255},
	{R: 255, G: 109, B: 194, A: 255},
	{R: 0, G: 190, B: 190, A: 255},
	{R: 253, G: 249, B: 0, A: 255},
}

// FoodColors is the palette food pellets are spawned from.
var FoodColors = []Color{
	{R: 255, G: 99, B: 71, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
	{R: 255, G: 215, B: 0, A: 255},
	{R: 50, G: 205, B: 50, A: 255},
	{R: 64, G: 224, B: 208, A: 255},
	{R: 30, G: 144, B: 255, A: 255},
	{R: 186, G: 85, B: 211, A: 255},
}
