package game

import (
	"math"
	"sort"
	"time"

	"blob-arena-server/config"
)

// stepMovement applies the steering policy for every player with a target,
// then integrates all blob positions. Runs once per tick before collision
// resolution.
func stepMovement(w *World, now time.Time) {
	for _, playerID := range w.playerOrder {
		player := w.players[playerID]
		if !player.HasTarget {
			continue
		}
		steerPlayerBlobs(w, player, now)
	}
	integrate(w)
}

// steerPlayerBlobs steers a player's pieces. The heaviest ("main") blob heads
// straight for the target; every other piece orbits the main blob unless the
// target sits inside the main blob's radius, in which case the player is
// recalling and the pieces head for the main blob itself.
func steerPlayerBlobs(w *World, player *Player, now time.Time) {
	owned := w.BlobsOwnedBy(player.ID)
	if len(owned) == 0 {
		return
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Mass > owned[j].Mass
	})

	main := owned[0]
	steerToward(main, player.Target)

	secondaries := owned[1:]
	if len(secondaries) == 0 {
		return
	}

	recalling := Distance(player.Target, main.Pos) < main.Radius
	rotation := float64(now.UnixMilli()) * config.ORBIT_ROTATION
	for i, blob := range secondaries {
		if recalling {
			steerToward(blob, main.Pos)
			continue
		}
		// Spread pieces evenly around the main blob and drift the whole
		// ring slowly over time.
		angle := rotation + float64(i)*(2*math.Pi/float64(len(secondaries)))
		ring := main.Radius + blob.Radius + config.ORBIT_RING_MARGIN
		steerToward(blob, Vector{
			X: main.Pos.X + math.Cos(angle)*ring,
			Y: main.Pos.Y + math.Sin(angle)*ring,
		})
	}
}

// steerToward blends the blob's velocity toward the target point. Desired
// speed is capped both by distance (slow arrival) and by mass (heavier blobs
// move slower), and the blend keeps momentum instead of snapping.
func steerToward(b *Blob, target Vector) {
	dx := target.X - b.Pos.X
	dy := target.Y - b.Pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return
	}
	speed := math.Min(0.1*dist, 5/(1+b.Mass*0.01))
	desiredX := dx / dist * speed
	desiredY := dy / dist * speed
	b.Vel.X += (desiredX - b.Vel.X) * config.STEERING_LERP
	b.Vel.Y += (desiredY - b.Vel.Y) * config.STEERING_LERP
}

// integrate advances every blob by its velocity, clamps to the world bounds
// (blobs stop at the wall, no bounce) and applies damping. Food never moves.
func integrate(w *World) {
	for _, b := range w.blobs {
		b.Pos.X = clamp(b.Pos.X+b.Vel.X, 0, w.Width)
		b.Pos.Y = clamp(b.Pos.Y+b.Vel.Y, 0, w.Height)
		b.Vel.X *= config.VELOCITY_DAMPING
		b.Vel.Y *= config.VELOCITY_DAMPING
	}
}
