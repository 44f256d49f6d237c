package config

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	_ = godotenv.Load()
}

// HTTPConfig holds the timeout for the outgoing Spotify client and for
// server shutdown. Overridable via HTTP_SPOTIFY_TIMEOUT and
// HTTP_SHUTDOWN_TIMEOUT.
type HTTPConfig struct {
	SpotifyTimeout  time.Duration
	ShutdownTimeout time.Duration
}

var HTTP = loadHTTPConfig()

func loadHTTPConfig() HTTPConfig {
	cfg := HTTPConfig{
		SpotifyTimeout:  60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("HTTP_SPOTIFY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SpotifyTimeout = d
		}
	}

	if v := os.Getenv("HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}

	return cfg
}

func SpotifyClient() *http.Client {
	return &http.Client{
		Timeout: HTTP.SpotifyTimeout,
	}
}
