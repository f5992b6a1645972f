package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blob-arena-server/server"
	game "blob-arena-server/src"

	"github.com/go-chi/chi/v5"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// EntityMetrics holds counts of the live simulation entities.
type EntityMetrics struct {
	Players       int `json:"players"`
	Blobs         int `json:"blobs"`
	Food          int `json:"food"`
	TotalEntities int `json:"total_entities"`
}

// WebSocketServerMetrics holds WebSocket server status.
type WebSocketServerMetrics struct {
	ActiveConnections int  `json:"active_connections"`
	EngineRunning     bool `json:"engine_running"`
}

// SimulationMetrics reports tick progress and leaderboard head.
type SimulationMetrics struct {
	Tick        uint64                  `json:"tick"`
	Leaderboard []game.LeaderboardEntry `json:"leaderboard"`
}

// MetricsResponse is the complete metrics response structure.
type MetricsResponse struct {
	Timestamp         time.Time              `json:"timestamp"`
	Health            HealthStatus           `json:"health"`
	HealthDescription string                 `json:"health_description"`
	Entities          EntityMetrics          `json:"entities"`
	WebSocket         WebSocketServerMetrics `json:"websocket"`
	Simulation        SimulationMetrics      `json:"simulation"`
	ServerUptimeSec   int64                  `json:"server_uptime_sec"`
}

// MetricsHandler manages metrics collection and reporting.
type MetricsHandler struct {
	engine          *game.Engine
	gameServer      *server.GameServer
	serverStartTime time.Time

	// Thresholds for health status
	warningBlobThreshold  int
	criticalBlobThreshold int
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(engine *game.Engine, gameServer *server.GameServer) *MetricsHandler {
	return &MetricsHandler{
		engine:                engine,
		gameServer:            gameServer,
		serverStartTime:       time.Now(),
		warningBlobThreshold:  800, // Warning at 80% of the tuned blob capacity
		criticalBlobThreshold: 950, // Critical at 95% of the tuned blob capacity
	}
}

// Routes registers metrics routes.
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.GetMetrics)
	r.Get("/metrics/health", h.GetHealth)
	r.Get("/metrics/entities", h.GetEntities)
	r.Get("/metrics/websocket", h.GetWebSocket)
}

// GetMetrics returns complete metrics.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.collectMetrics())
}

// GetHealth returns only the health portion of the metrics.
func (h *MetricsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	m := h.collectMetrics()
	writeJSON(w, map[string]interface{}{
		"health":      m.Health,
		"description": m.HealthDescription,
		"timestamp":   m.Timestamp,
	})
}

// GetEntities returns only the entity counts.
func (h *MetricsHandler) GetEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.collectMetrics().Entities)
}

// GetWebSocket returns only the WebSocket server status.
func (h *MetricsHandler) GetWebSocket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.collectMetrics().WebSocket)
}

func (h *MetricsHandler) collectMetrics() MetricsResponse {
	counts := h.engine.GetEntityCounts()
	snapshot := h.engine.Snapshot()

	health := HealthHealthy
	description := "all systems operational"
	switch {
	case counts["blobs"] >= h.criticalBlobThreshold:
		health = HealthCritical
		description = fmt.Sprintf("blob count %d at critical capacity", counts["blobs"])
	case counts["blobs"] >= h.warningBlobThreshold:
		health = HealthWarning
		description = fmt.Sprintf("blob count %d approaching capacity", counts["blobs"])
	case !h.engine.IsRunning():
		health = HealthCritical
		description = "simulation engine is not running"
	}

	return MetricsResponse{
		Timestamp:         time.Now(),
		Health:            health,
		HealthDescription: description,
		Entities: EntityMetrics{
			Players:       counts["players"],
			Blobs:         counts["blobs"],
			Food:          counts["food"],
			TotalEntities: counts["total"],
		},
		WebSocket: WebSocketServerMetrics{
			ActiveConnections: h.gameServer.GetConnectedClientsCount(),
			EngineRunning:     h.engine.IsRunning(),
		},
		Simulation: SimulationMetrics{
			Tick:        snapshot.Tick,
			Leaderboard: snapshot.Leaderboard,
		},
		ServerUptimeSec: int64(time.Since(h.serverStartTime).Seconds()),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
