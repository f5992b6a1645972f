package game

import (
	"log"
	"net/http"
	"os"
)

// StaticFileServer serves the browser client from dir, falling back to
// fallbackPath for client-side routes. When the directory is missing the
// server still runs for websocket and API traffic.
func StaticFileServer(dir string, fallbackPath string) http.Handler {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("WARNING: Static directory %s does not exist, serving placeholder.", dir)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Blob arena server running. Connect to /ws for the game."))
		})
	}

	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(dir + r.URL.Path); err == nil {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, dir+fallbackPath)
	})
}
