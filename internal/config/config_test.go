package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{envDataDir, envDBName, envLogLevel, envLogFormat, envSeed, envPersist} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.DataDir != DefaultDataDir() {
		t.Fatalf("expected default data dir %s, got %s", DefaultDataDir(), cfg.DataDir)
	}
	if cfg.DBName != defaultDBName {
		t.Fatalf("expected default db name %s, got %s", defaultDBName, cfg.DBName)
	}
	if cfg.Seed != "" {
		t.Fatalf("expected empty seed by default, got %s", cfg.Seed)
	}
	if !cfg.Persist {
		t.Fatal("expected persistence on by default")
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envDataDir, dir)
	t.Setenv(envDBName, "scores.db")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envSeed, "fixed")
	t.Setenv(envPersist, "no")

	cfg := Load()

	if cfg.DBPath() != filepath.Join(dir, "scores.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Seed != "fixed" {
		t.Fatalf("expected seed fixed, got %s", cfg.Seed)
	}
	if cfg.Persist {
		t.Fatal("expected persistence disabled")
	}
}

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("ARCADIA_BOOL_TEST", "")
	if got := boolEnvOrDefault("ARCADIA_BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"No", false},
		{"maybe", true},
	}
	for _, tc := range cases {
		t.Setenv("ARCADIA_BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("ARCADIA_BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}
