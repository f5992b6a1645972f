package game

import (
	"time"

	"blob-arena-server/config"
)

// 1. Data Structures

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Blob is one controllable piece of a player. A player owns one blob until
// they split, after which every piece steers, eats and collides on its own.
type Blob struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	Name        string       `json:"name"`
	Color       config.Color `json:"color"`
	Pos         Vector       `json:"pos"`
	Vel         Vector       `json:"vel"`
	Mass        float64      `json:"mass"`
	Radius      float64      `json:"radius"`
	RecombineAt time.Time    `json:"-"` // earliest time a same-owner merge is allowed
}

// SetMass updates the blob's mass and keeps the derived radius in sync.
// Radius must never be read from a stale mass.
func (b *Blob) SetMass(mass float64) {
	b.Mass = mass
	b.Radius = RadiusForMass(mass)
}

type Food struct {
	ID     string       `json:"id"`
	Pos    Vector       `json:"pos"`
	Mass   float64      `json:"mass"`
	Radius float64      `json:"radius"`
	Color  config.Color `json:"color"`
}

type Player struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Color     config.Color `json:"color"`
	Target    Vector       `json:"target"`
	HasTarget bool         `json:"hasTarget"`
}

type ChatMessage struct {
	Name  string       `json:"name"`
	Text  string       `json:"text"`
	Color config.Color `json:"color"`
}

// LeaderboardEntry is derived per tick from the live blob set, never stored.
type LeaderboardEntry struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Mass     float64 `json:"mass"`
}

// WorldSnapshot is the immutable per-tick copy handed to external consumers.
// Consumers must not mutate it and must not assume it is the live store.
type WorldSnapshot struct {
	Tick        uint64             `json:"tick"`
	Blobs       []Blob             `json:"blobs"`
	Food        []Food             `json:"food"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Chat        []ChatMessage      `json:"chat"`
}

// 2. Command inbox

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdLeave
	cmdSetTarget
	cmdSplit
	cmdChat
)

// command is one externally submitted player intent. Commands are staged in
// the engine inbox and drained at the next tick boundary so every tick
// observes a single consistent input set.
type command struct {
	kind     commandKind
	playerID string
	name     string
	point    Vector
	text     string
}
