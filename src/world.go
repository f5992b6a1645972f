package game

import (
	"log"
	"math/rand"
	"time"

	"blob-arena-server/config"

	"github.com/google/uuid"
)

// World is the authoritative mutable store of blobs, food, players and recent
// chat. Exactly one logical actor (the engine tick) mutates it; it carries no
// lock of its own. Blobs are kept in a stable insertion-ordered list so the
// pair-collision scan is reproducible across runs.
type World struct {
	Width  float64
	Height float64

	blobs       []*Blob
	players     map[string]*Player
	playerOrder []string // join order, used for stable leaderboard ties
	foods       []*Food
	chat        []ChatMessage

	rng *rand.Rand
}

// NewWorld initializes an empty world and tops the food population up to the
// configured target.
func NewWorld() *World {
	w := &World{
		Width:   config.WORLD_WIDTH,
		Height:  config.WORLD_HEIGHT,
		players: make(map[string]*Player),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	replenishFood(w)
	return w
}

// newWorldWithSeed is used by tests that need reproducible spawns.
func newWorldWithSeed(seed int64) *World {
	w := &World{
		Width:   config.WORLD_WIDTH,
		Height:  config.WORLD_HEIGHT,
		players: make(map[string]*Player),
		rng:     rand.New(rand.NewSource(seed)),
	}
	replenishFood(w)
	return w
}

// AddPlayer creates the player record and spawns their first blob at a random
// world position with the starting mass.
func (w *World) AddPlayer(playerID, name string) *Player {
	if _, exists := w.players[playerID]; exists {
		log.Printf("WARNING: Player %s already exists, cannot add.", playerID)
		return w.players[playerID]
	}
	color := config.BlobColors[w.rng.Intn(len(config.BlobColors))]
	player := &Player{ID: playerID, Name: name, Color: color}
	w.players[playerID] = player
	w.playerOrder = append(w.playerOrder, playerID)

	blob := &Blob{
		ID:      uuid.New().String(),
		OwnerID: playerID,
		Name:    name,
		Color:   color,
		Pos: Vector{
			X: w.rng.Float64() * w.Width,
			Y: w.rng.Float64() * w.Height,
		},
	}
	blob.SetMass(config.START_MASS)
	w.blobs = append(w.blobs, blob)

	log.Printf("Player %s (%s) joined at (%.0f, %.0f).", playerID, name, blob.Pos.X, blob.Pos.Y)
	return player
}

// RemovePlayer removes every blob owned by the player and the player record.
func (w *World) RemovePlayer(playerID string) {
	if _, exists := w.players[playerID]; !exists {
		log.Printf("WARNING: Attempted to remove non-existent player: %s", playerID)
		return
	}
	delete(w.players, playerID)
	for i, id := range w.playerOrder {
		if id == playerID {
			w.playerOrder = append(w.playerOrder[:i], w.playerOrder[i+1:]...)
			break
		}
	}

	kept := w.blobs[:0]
	for _, b := range w.blobs {
		if b.OwnerID != playerID {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.blobs); i++ {
		w.blobs[i] = nil
	}
	w.blobs = kept
	log.Printf("Player %s left.", playerID)
}

// BlobsOwnedBy returns the player's live blobs in world insertion order.
func (w *World) BlobsOwnedBy(playerID string) []*Blob {
	var owned []*Blob
	for _, b := range w.blobs {
		if b.OwnerID == playerID {
			owned = append(owned, b)
		}
	}
	return owned
}

// TotalMassOf sums the mass of every live blob the player owns.
func (w *World) TotalMassOf(playerID string) float64 {
	total := 0.0
	for _, b := range w.blobs {
		if b.OwnerID == playerID {
			total += b.Mass
		}
	}
	return total
}

// AppendChat appends a message to the rolling chat log, dropping the oldest
// entries beyond the configured bound.
func (w *World) AppendChat(msg ChatMessage) {
	w.chat = append(w.chat, msg)
	if len(w.chat) > config.MAX_CHAT_HISTORY {
		w.chat = w.chat[len(w.chat)-config.MAX_CHAT_HISTORY:]
	}
}
