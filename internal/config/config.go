// Package config collects the environment the app core needs. Values
// come from the process environment; cmd entry points load a .env file
// first so local runs need no exported variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	// SupabaseURL is the project base URL; auth and storage endpoints
	// hang off it.
	SupabaseURL string
	// SupabaseAnonKey authenticates unauthenticated requests (sign-in)
	// and is sent as the apikey header on every call.
	SupabaseAnonKey string

	// PGDSN, when set, switches the profile/project/update stores from
	// in-memory to PostgreSQL.
	PGDSN string

	// StorageBucket holds update attachments.
	StorageBucket string

	// TokenPath is where session tokens persist between runs.
	TokenPath string

	// DebugAddr serves /healthz and /metrics when non-empty.
	DebugAddr string

	// ResolveTimeout bounds one role resolution attempt.
	ResolveTimeout time.Duration

	// UploadRate paces attachment uploads per second; 0 means unpaced.
	UploadRate int
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		SupabaseURL:     os.Getenv("BLUSH_SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("BLUSH_SUPABASE_ANON_KEY"),
		PGDSN:           os.Getenv("BLUSH_PG_DSN"),
		StorageBucket:   getenv("BLUSH_STORAGE_BUCKET", "project-updates"),
		TokenPath:       getenv("BLUSH_TOKEN_PATH", defaultTokenPath()),
		DebugAddr:       os.Getenv("BLUSH_DEBUG_ADDR"),
		ResolveTimeout:  10 * time.Second,
	}

	if v := os.Getenv("BLUSH_RESOLVE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("config: BLUSH_RESOLVE_TIMEOUT: " + err.Error())
		}
		cfg.ResolveTimeout = d
	}
	if v := os.Getenv("BLUSH_UPLOAD_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, errors.New("config: BLUSH_UPLOAD_RATE must be a non-negative integer")
		}
		cfg.UploadRate = n
	}

	if cfg.SupabaseURL == "" {
		return Config{}, errors.New("config: BLUSH_SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return Config{}, errors.New("config: BLUSH_SUPABASE_ANON_KEY is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blushhush/tokens.json"
	}
	return home + "/.blushhush/tokens.json"
}
