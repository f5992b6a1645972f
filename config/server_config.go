package config

import (
	"os"
	"time"
)

// ServerConfig holds HTTP server configuration loaded from environment variables.
type ServerConfig struct {
	Addr         string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins []string
}

// LoadServerConfig reads the server configuration from the environment,
// falling back to development defaults.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         getEnv("ARENA_ADDR", ":8080"),
		StaticDir:    getEnv("STATIC_DIR", "./public"),
		ReadTimeout:  parseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout: parseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"), 15*time.Second),
		AllowOrigins: []string{getEnv("CORS_ALLOW_ORIGIN", "*")},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
