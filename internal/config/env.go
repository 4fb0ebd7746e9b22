// internal/config/env.go
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables recognised by the daemon.
const (
	EnvConfigPath   = "LIFELIGHTS_CONFIG"
	EnvLogLevel     = "LIFELIGHTS_LOG_LEVEL"
	EnvStatusListen = "LIFELIGHTS_STATUS_LISTEN"

	DefaultConfigPath = "lifelights.yml"
)

// LoadEnv loads an optional .env file into the process environment.
// A missing file is not an error.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ResolvePath picks the config path: explicit argument, then env, then default.
func ResolvePath(arg string) string {
	if p := strings.TrimSpace(arg); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultConfigPath
}

// ApplyEnv overlays environment overrides onto a loaded config.
// Call before Validate so overrides are validated too.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvStatusListen); ok {
		cfg.Status.Listen = strings.TrimSpace(v)
	}
}
