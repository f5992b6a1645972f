package main

import (
	"log"
	"net/http"

	"blob-arena-server/api"
	"blob-arena-server/config"
	gameserver "blob-arena-server/server"
	game "blob-arena-server/src"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment defaults")
	}
	cfg := config.LoadServerConfig()

	// Core simulation engine
	engine := game.NewEngine()
	engine.Start()

	// WebSocket transport
	ws := gameserver.NewGameServer(engine)
	ws.Run()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Static browser client
	r.Handle("/*", game.StaticFileServer(cfg.StaticDir, "/index.html"))

	// Mount REST API under /api
	r.Mount("/api", api.NewAPIRouter(engine, ws))
	// WebSocket endpoint
	r.HandleFunc("/ws", ws.HandleConnections)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Server started on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe:", err)
	}
}
