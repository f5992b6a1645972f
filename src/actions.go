package game

import (
	"math"
	"time"

	"blob-arena-server/config"

	"github.com/google/uuid"
)

// applyCommand applies one queued player intent to the world. Unknown player
// ids are a no-op, not an error: the player may have disconnected while the
// command was in flight.
func applyCommand(w *World, c command, now time.Time) {
	switch c.kind {
	case cmdJoin:
		w.AddPlayer(c.playerID, c.name)
	case cmdLeave:
		w.RemovePlayer(c.playerID)
	case cmdSetTarget:
		player, ok := w.players[c.playerID]
		if !ok {
			return
		}
		player.Target = c.point
		player.HasTarget = true
	case cmdSplit:
		applySplit(w, c.playerID, c.point, now)
	case cmdChat:
		player, ok := w.players[c.playerID]
		if !ok {
			return
		}
		w.AppendChat(ChatMessage{Name: player.Name, Text: c.text, Color: player.Color})
	}
}

// applySplit halves every eligible blob and ejects a new sibling toward the
// aim point, as long as the piece count stays under the player's mass-tiered
// cap. A request at the cap is a no-op.
func applySplit(w *World, playerID string, aim Vector, now time.Time) {
	if _, ok := w.players[playerID]; !ok {
		return
	}
	owned := w.BlobsOwnedBy(playerID)
	maxBlobs := MaxBlobsForMass(w.TotalMassOf(playerID))
	count := len(owned)
	if count >= maxBlobs {
		return
	}

	eligibleAt := now.Add(config.RECOMBINE_DELAY)
	for _, blob := range owned {
		if count >= maxBlobs {
			break
		}
		if blob.Mass < config.MIN_SPLIT_MASS {
			continue
		}

		blob.SetMass(blob.Mass / 2)
		blob.RecombineAt = eligibleAt

		dirX, dirY := 1.0, 0.0
		dx := aim.X - blob.Pos.X
		dy := aim.Y - blob.Pos.Y
		if dist := math.Sqrt(dx*dx + dy*dy); dist > 0 {
			dirX, dirY = dx/dist, dy/dist
		}

		sibling := &Blob{
			ID:      uuid.New().String(),
			OwnerID: blob.OwnerID,
			Name:    blob.Name,
			Color:   blob.Color,
			Pos: Vector{
				X: blob.Pos.X + dirX*config.SPLIT_OFFSET_FACTOR*blob.Radius,
				Y: blob.Pos.Y + dirY*config.SPLIT_OFFSET_FACTOR*blob.Radius,
			},
			Vel: Vector{
				X: blob.Vel.X + dirX*config.SPLIT_EJECT_IMPULSE,
				Y: blob.Vel.Y + dirY*config.SPLIT_EJECT_IMPULSE,
			},
			RecombineAt: eligibleAt,
		}
		sibling.SetMass(blob.Mass)
		w.blobs = append(w.blobs, sibling)
		count++
	}
}
