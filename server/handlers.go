package server

import (
	"encoding/json"
	"log"
	"math"
	"strings"

	game "blob-arena-server/src"
)

const maxNameLength = 24

// clientMessage represents the generic structure of messages from the client.
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// clientJoinData carries the display name for a "join" message.
type clientJoinData struct {
	Name string `json:"name"`
}

// clientPointData carries a world-space point for "set_target" and "split".
type clientPointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// clientChatData carries the text for a "chat" message.
type clientChatData struct {
	Text string `json:"text"`
}

// handleClientMessage processes incoming JSON messages from a specific
// client. Numeric sanity is enforced here; the engine assumes well-formed
// input.
func (gs *GameServer) handleClientMessage(client *WebSocketClient, message []byte) {
	var msg clientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Client %s: ERROR unmarshaling incoming message: %v", client.playerID, err)
		return
	}

	switch msg.Type {
	case "join":
		var data clientJoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("Client %s: ERROR unmarshaling join data: %v", client.playerID, err)
			return
		}
		gs.processJoin(client, data)
	case "set_target":
		var data clientPointData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("Client %s: ERROR unmarshaling target data: %v", client.playerID, err)
			return
		}
		if client.playerID == "" || !isFinitePoint(data) {
			return
		}
		gs.engine.SetTarget(client.playerID, game.Vector{X: data.X, Y: data.Y})
	case "split":
		var data clientPointData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("Client %s: ERROR unmarshaling split data: %v", client.playerID, err)
			return
		}
		if client.playerID == "" || !isFinitePoint(data) {
			return
		}
		gs.engine.RequestSplit(client.playerID, game.Vector{X: data.X, Y: data.Y})
	case "chat":
		var data clientChatData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("Client %s: ERROR unmarshaling chat data: %v", client.playerID, err)
			return
		}
		if client.playerID == "" || strings.TrimSpace(data.Text) == "" {
			return
		}
		gs.engine.SendChat(client.playerID, data.Text)
	case "eject_mass":
		// Accepted from legacy clients but the simulation defines no eject
		// mechanic; dropped at the boundary.
	default:
		log.Printf("Client %s: WARNING unknown message type '%s'.", client.playerID, msg.Type)
	}
}

// processJoin creates the player on the first join message and acknowledges
// the assigned id. Repeated joins on the same connection are ignored.
func (gs *GameServer) processJoin(client *WebSocketClient, data clientJoinData) {
	if client.playerID != "" {
		log.Printf("Client %s: Ignoring repeated join.", client.playerID)
		return
	}

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = "unnamed blob"
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}

	client.playerID = gs.engine.Join(name)
	log.Printf("Client %s joined as player %s (%s).", client.conn.RemoteAddr().String(), client.playerID, name)

	assignedMsg, _ := json.Marshal(map[string]interface{}{
		"type": "player_assigned",
		"payload": map[string]string{
			"playerId": client.playerID,
			"name":     name,
		},
	})
	select {
	case client.send <- assignedMsg:
	default:
		log.Printf("WARNING: Client %s send buffer full when acknowledging join.", client.playerID)
	}
}

// isFinitePoint rejects NaN and infinite coordinates before they reach the
// engine. Out-of-range finite values are allowed; the steering policy simply
// heads toward them.
func isFinitePoint(p clientPointData) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
