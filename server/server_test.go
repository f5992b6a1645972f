package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	game "blob-arena-server/src"

	"github.com/gorilla/websocket"
)

type serverMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func startTestServer(t *testing.T) (*game.Engine, *GameServer, *httptest.Server) {
	t.Helper()
	engine := game.NewEngine()
	engine.Start()
	t.Cleanup(engine.Stop)

	gs := NewGameServer(engine)
	gs.Run()

	ts := httptest.NewServer(http.HandlerFunc(gs.HandleConnections))
	t.Cleanup(ts.Close)
	return engine, gs, ts
}

func dialTestServer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMessageOfType skips over other server messages (snapshots arrive every
// tick) until the wanted type shows up.
func readMessageOfType(t *testing.T, conn *websocket.Conn, wantType string) serverMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", wantType, err)
		}
		if msg.Type == wantType {
			return msg
		}
		if time.Now().After(deadline) {
			t.Fatalf("no %q message before deadline", wantType)
		}
	}
}

func sendClientMessage(t *testing.T, conn *websocket.Conn, msgType string, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s data: %v", msgType, err)
	}
	if err := conn.WriteJSON(map[string]interface{}{"type": msgType, "data": json.RawMessage(raw)}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func TestConnectReceivesInitData(t *testing.T) {
	_, _, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	msg := readMessageOfType(t, conn, "init_data")
	var payload struct {
		WorldWidth  float64 `json:"worldWidth"`
		WorldHeight float64 `json:"worldHeight"`
		TickMs      float64 `json:"tickMs"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal init payload: %v", err)
	}
	if payload.WorldWidth <= 0 || payload.WorldHeight <= 0 || payload.TickMs <= 0 {
		t.Fatalf("init_data payload not populated: %+v", payload)
	}
}

func TestJoinAssignsPlayerAndSnapshotsFollow(t *testing.T) {
	engine, _, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	sendClientMessage(t, conn, "join", map[string]string{"name": "tester"})

	assigned := readMessageOfType(t, conn, "player_assigned")
	var ack struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(assigned.Payload, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.PlayerID == "" || ack.Name != "tester" {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	snapshot := readMessageOfType(t, conn, "world_snapshot")
	var world game.WorldSnapshot
	if err := json.Unmarshal(snapshot.Payload, &world); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(world.Food) == 0 {
		t.Fatal("snapshot carries no food")
	}

	// The engine applies the join on its next tick.
	waitFor(t, func() bool {
		return len(engine.Snapshot().Blobs) == 1
	}, "player blob to appear in snapshots")
}

func TestBlankNameGetsDefault(t *testing.T) {
	_, _, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	sendClientMessage(t, conn, "join", map[string]string{"name": "   "})

	assigned := readMessageOfType(t, conn, "player_assigned")
	var ack struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(assigned.Payload, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Name != "unnamed blob" {
		t.Fatalf("name = %q, want %q", ack.Name, "unnamed blob")
	}
}

func TestMalformedAndUnknownMessagesDoNotDropConnection(t *testing.T) {
	_, gs, ts := startTestServer(t)
	conn := dialTestServer(t, ts)
	readMessageOfType(t, conn, "init_data")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	sendClientMessage(t, conn, "teleport", map[string]string{})
	sendClientMessage(t, conn, "eject_mass", map[string]float64{"x": 1, "y": 1})

	// The connection survives bad input and keeps receiving snapshots.
	readMessageOfType(t, conn, "world_snapshot")
	if got := gs.GetConnectedClientsCount(); got != 1 {
		t.Fatalf("connected clients = %d, want 1", got)
	}
}

func TestMalformedTargetRejected(t *testing.T) {
	engine, _, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	sendClientMessage(t, conn, "join", map[string]string{"name": "tester"})
	readMessageOfType(t, conn, "player_assigned")
	waitFor(t, func() bool {
		return len(engine.Snapshot().Blobs) == 1
	}, "player blob to appear")

	// Non-numeric coordinate; decoding fails and the intent is dropped.
	raw := []byte(`{"type":"set_target","data":{"x":"NaN","y":0}}`)
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write target: %v", err)
	}

	// The connection stays healthy after the rejected intent.
	readMessageOfType(t, conn, "world_snapshot")
}

func TestDisconnectRemovesPlayer(t *testing.T) {
	engine, gs, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	sendClientMessage(t, conn, "join", map[string]string{"name": "quitter"})
	readMessageOfType(t, conn, "player_assigned")
	waitFor(t, func() bool {
		return len(engine.Snapshot().Blobs) == 1
	}, "player blob to appear")

	conn.Close()

	waitFor(t, func() bool {
		return gs.GetConnectedClientsCount() == 0 && len(engine.Snapshot().Blobs) == 0
	}, "player removal after disconnect")
}

func TestChatRelayedThroughSnapshot(t *testing.T) {
	engine, _, ts := startTestServer(t)
	conn := dialTestServer(t, ts)

	sendClientMessage(t, conn, "join", map[string]string{"name": "talker"})
	readMessageOfType(t, conn, "player_assigned")

	sendClientMessage(t, conn, "chat", map[string]string{"text": "hello arena"})

	waitFor(t, func() bool {
		for _, m := range engine.Snapshot().Chat {
			if m.Name == "talker" && m.Text == "hello arena" {
				return true
			}
		}
		return false
	}, "chat message in snapshot")
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
