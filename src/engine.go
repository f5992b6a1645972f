package game

import (
	"log"
	"sync"
	"time"

	"blob-arena-server/config"

	"github.com/google/uuid"
)

// Engine owns the world and drives it at a fixed rate. External actions are
// staged in a command inbox and drained at the next tick boundary; exactly one
// goroutine runs the tick body, so the world never sees concurrent mutation.
type Engine struct {
	mu           sync.Mutex // guards world, tick counter and lastSnapshot
	world        *World
	tick         uint64
	lastSnapshot WorldSnapshot

	commandsMu      sync.Mutex // protects pendingCommands between handlers and the tick loop
	pendingCommands []command

	listenersMu sync.Mutex
	listeners   []func(WorldSnapshot)

	runMu   sync.Mutex // guards the idle/running scheduler state
	running bool
	done    chan struct{}
}

// NewEngine creates an engine with a freshly populated world.
func NewEngine() *Engine {
	return &Engine{world: NewWorld()}
}

// Start moves the scheduler from idle to running. Starting twice is a no-op.
func (e *Engine) Start() {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.done = make(chan struct{})
	go e.run(e.done)
	log.Printf("Engine started, tick interval %v.", config.GAME_TICK_INTERVAL)
}

// Stop moves the scheduler back to idle and leaves no dangling scheduled
// execution. Stopping when idle is a no-op; safe to call at any time.
func (e *Engine) Stop() {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	close(e.done)
	log.Println("Engine stopped.")
}

func (e *Engine) run(done chan struct{}) {
	ticker := time.NewTicker(config.GAME_TICK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// A slow tick delays the next firing; ticks never overlap.
			e.Step(time.Now())
		case <-done:
			return
		}
	}
}

// Step executes one full tick: drain the command inbox, integrate movement,
// resolve collisions, top the food back up, rebuild the leaderboard and
// publish an immutable snapshot.
func (e *Engine) Step(now time.Time) {
	commands := e.drainCommands()

	e.mu.Lock()
	for _, c := range commands {
		applyCommand(e.world, c, now)
	}
	stepMovement(e.world, now)
	resolveCollisions(e.world, now)
	replenishFood(e.world)
	leaderboard := computeLeaderboard(e.world)

	e.tick++
	snapshot := buildSnapshot(e.world, leaderboard, e.tick)
	e.lastSnapshot = snapshot
	e.mu.Unlock()

	e.publish(snapshot)
}

func (e *Engine) drainCommands() []command {
	e.commandsMu.Lock()
	defer e.commandsMu.Unlock()
	commands := e.pendingCommands
	e.pendingCommands = nil
	return commands
}

func (e *Engine) enqueue(c command) {
	e.commandsMu.Lock()
	e.pendingCommands = append(e.pendingCommands, c)
	e.commandsMu.Unlock()
}

// ----- External action API -----

// Join queues creation of a new player and returns the assigned player id.
// The player and their first blob exist from the next tick on.
func (e *Engine) Join(name string) string {
	playerID := uuid.New().String()
	e.enqueue(command{kind: cmdJoin, playerID: playerID, name: name})
	return playerID
}

// Leave queues removal of the player and every blob they own.
func (e *Engine) Leave(playerID string) {
	e.enqueue(command{kind: cmdLeave, playerID: playerID})
}

// SetTarget queues a steering target update. Out-of-range points are accepted
// and simply steered toward.
func (e *Engine) SetTarget(playerID string, point Vector) {
	e.enqueue(command{kind: cmdSetTarget, playerID: playerID, point: point})
}

// RequestSplit queues a split toward the given world point.
func (e *Engine) RequestSplit(playerID string, point Vector) {
	e.enqueue(command{kind: cmdSplit, playerID: playerID, point: point})
}

// SendChat queues a chat message for the named player.
func (e *Engine) SendChat(playerID, text string) {
	e.enqueue(command{kind: cmdChat, playerID: playerID, text: text})
}

// RegisterSnapshotListener subscribes a callback invoked once per tick with
// the published snapshot. The snapshot is a value copy, safe for concurrent
// reads; the engine never mutates a snapshot already handed out.
func (e *Engine) RegisterSnapshotListener(fn func(WorldSnapshot)) {
	e.listenersMu.Lock()
	e.listeners = append(e.listeners, fn)
	e.listenersMu.Unlock()
}

func (e *Engine) publish(snapshot WorldSnapshot) {
	e.listenersMu.Lock()
	listeners := make([]func(WorldSnapshot), len(e.listeners))
	copy(listeners, e.listeners)
	e.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// buildSnapshot copies the live collections out of the world. Consumers hold
// no reference into the store.
func buildSnapshot(w *World, leaderboard []LeaderboardEntry, tick uint64) WorldSnapshot {
	blobs := make([]Blob, len(w.blobs))
	for i, b := range w.blobs {
		blobs[i] = *b
	}
	foods := make([]Food, len(w.foods))
	for i, f := range w.foods {
		foods[i] = *f
	}
	chat := make([]ChatMessage, len(w.chat))
	copy(chat, w.chat)
	return WorldSnapshot{
		Tick:        tick,
		Blobs:       blobs,
		Food:        foods,
		Leaderboard: leaderboard,
		Chat:        chat,
	}
}

// ----- Metrics Methods -----

// Snapshot returns the latest published snapshot.
func (e *Engine) Snapshot() WorldSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSnapshot
}

// GetEntityCounts returns counts of all entity types held by the engine.
func (e *Engine) GetEntityCounts() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	counts := map[string]int{
		"players": len(e.world.players),
		"blobs":   len(e.world.blobs),
		"food":    len(e.world.foods),
	}
	counts["total"] = counts["players"] + counts["blobs"] + counts["food"]
	return counts
}

// CurrentTick returns the number of ticks executed so far.
func (e *Engine) CurrentTick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// IsRunning reports whether the tick scheduler is active.
func (e *Engine) IsRunning() bool {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.running
}
