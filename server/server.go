package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"blob-arena-server/config"
	game "blob-arena-server/src"

	"github.com/gorilla/websocket"
)

// GameServer bridges WebSocket clients and the simulation engine. Client
// intents are forwarded to the engine's command queue; published snapshots
// are fanned out to every connected client once per tick.
type GameServer struct {
	upgrader     websocket.Upgrader
	engine       *game.Engine
	clients      map[*WebSocketClient]bool
	clientsMutex sync.RWMutex
	register     chan *WebSocketClient
	unregister   chan *WebSocketClient
}

// NewGameServer initializes a new GameServer bound to the given engine and
// subscribes it to the engine's snapshot stream.
func NewGameServer(engine *game.Engine) *GameServer {
	gs := &GameServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development. RESTRICT THIS IN PRODUCTION!
				return true
			},
		},
		engine:     engine,
		clients:    make(map[*WebSocketClient]bool),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}
	engine.RegisterSnapshotListener(gs.broadcastSnapshot)
	return gs
}

// Run starts the client registration loop.
func (gs *GameServer) Run() {
	go func() {
		for {
			select {
			case client := <-gs.register:
				gs.registerClient(client)
			case client := <-gs.unregister:
				gs.unregisterClient(client)
			}
		}
	}()
}

// HandleConnections upgrades HTTP requests to WebSocket connections. The
// player object is not created until the client sends a join message with
// its display name.
func (gs *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewWebSocketClient(conn)
	gs.register <- client

	go client.WritePump()
	go client.ReadPump(gs)
}

func (gs *GameServer) registerClient(client *WebSocketClient) {
	gs.clientsMutex.Lock()
	gs.clients[client] = true
	gs.clientsMutex.Unlock()
	log.Printf("Client %s connected.", client.conn.RemoteAddr().String())

	initMsg, _ := json.Marshal(map[string]interface{}{
		"type": "init_data",
		"payload": map[string]interface{}{
			"worldWidth":  config.WORLD_WIDTH,
			"worldHeight": config.WORLD_HEIGHT,
			"tickMs":      float64(config.GAME_TICK_INTERVAL.Milliseconds()),
			"startMass":   config.START_MASS,
		},
	})
	select {
	case client.send <- initMsg:
	default:
		log.Printf("WARNING: Client init channel full.")
	}
}

func (gs *GameServer) unregisterClient(client *WebSocketClient) {
	gs.clientsMutex.Lock()
	if _, ok := gs.clients[client]; ok {
		delete(gs.clients, client)
		close(client.send) // Signal the WritePump to terminate
	}
	gs.clientsMutex.Unlock()

	if client.playerID != "" {
		gs.engine.Leave(client.playerID)
	}
	log.Printf("Client %s (PlayerID: %s) unregistered.", client.conn.RemoteAddr().String(), client.playerID)
}

// broadcastSnapshot marshals the per-tick snapshot once and sends it to every
// connected client.
func (gs *GameServer) broadcastSnapshot(snapshot game.WorldSnapshot) {
	gs.clientsMutex.RLock()
	if len(gs.clients) == 0 {
		gs.clientsMutex.RUnlock()
		return
	}
	clientsToBroadcast := make([]*WebSocketClient, 0, len(gs.clients))
	for client := range gs.clients {
		clientsToBroadcast = append(clientsToBroadcast, client)
	}
	gs.clientsMutex.RUnlock()

	message, err := json.Marshal(map[string]interface{}{
		"type":    "world_snapshot",
		"payload": snapshot,
	})
	if err != nil {
		log.Printf("ERROR: Failed to marshal snapshot for broadcast: %v", err)
		return
	}

	for _, client := range clientsToBroadcast {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full; the WritePump deadline will
			// eventually drop a persistently slow client.
			log.Printf("WARNING: Client %s send buffer full during snapshot broadcast.", client.playerID)
		}
	}
}

// GetConnectedClientsCount returns the number of currently connected
// WebSocket clients.
func (gs *GameServer) GetConnectedClientsCount() int {
	gs.clientsMutex.RLock()
	defer gs.clientsMutex.RUnlock()
	return len(gs.clients)
}
