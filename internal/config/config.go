// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/MJE43/arcadia-desktop/internal/logging"
)

// Config holds runtime configuration for the desktop app.
type Config struct {
	DataDir string
	DBName  string
	// Seed fixes the random source for shuffles and apple spawns. Empty means
	// a fresh random seed per run.
	Seed string
	// Persist false keeps the leaderboard in memory only.
	Persist bool
	Log     logging.Config
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DataDir: envOrDefault(envDataDir, DefaultDataDir()),
		DBName:  envOrDefault(envDBName, defaultDBName),
		Seed:    os.Getenv(envSeed),
		Persist: boolEnvOrDefault(envPersist, defaultPersist),
		Log: logging.Config{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

// DBPath is the SQLite file inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBName)
}

// DefaultDataDir returns an OS-appropriate writable directory.
func DefaultDataDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, AppDirName)
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, "."+AppDirName)
	}
	return "."
}
