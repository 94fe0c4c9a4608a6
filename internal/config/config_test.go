package config

import (
	"testing"
	"time"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"STAGE":        StageDev,
		"PORT":         "2024",
		"DATABASE_URL": "postgres://localhost/battleship",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 2024 {
		t.Fatalf("expected port: 2024\tgot: %d", cfg.Port)
	}
	if cfg.MigrationDir != defaultMigrationDir {
		t.Fatalf("expected migration dir: %s\tgot: %s", defaultMigrationDir, cfg.MigrationDir)
	}
	if cfg.AIActionDelay != defaultAIActionDelay {
		t.Fatalf("expected ai delay: %s\tgot: %s", defaultAIActionDelay, cfg.AIActionDelay)
	}
	if cfg.TurnIdleTimeout != 0 {
		t.Fatalf("expected idle turns to be allowed by default\tgot: %s", cfg.TurnIdleTimeout)
	}
	if cfg.AsteroidCount != defaultAsteroidCount {
		t.Fatalf("expected asteroids: %d\tgot: %d", defaultAsteroidCount, cfg.AsteroidCount)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"STAGE":             StageProd,
		"PORT":              "8080",
		"MIGRATION_DIR":     "file:/srv/migration",
		"AI_ACTION_DELAY":   "0s",
		"TURN_IDLE_TIMEOUT": "90s",
		"ASTEROID_COUNT":    "4",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MigrationDir != "file:/srv/migration" {
		t.Fatalf("expected migration dir override\tgot: %s", cfg.MigrationDir)
	}
	if cfg.AIActionDelay != 0 {
		t.Fatalf("expected no ai delay\tgot: %s", cfg.AIActionDelay)
	}
	if cfg.TurnIdleTimeout != 90*time.Second {
		t.Fatalf("expected idle timeout: 90s\tgot: %s", cfg.TurnIdleTimeout)
	}
	if cfg.AsteroidCount != 4 {
		t.Fatalf("expected asteroids: 4\tgot: %d", cfg.AsteroidCount)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing stage", env: map[string]string{"PORT": "2024"}},
		{name: "unknown stage", env: map[string]string{"STAGE": "staging", "PORT": "2024"}},
		{name: "bad port", env: map[string]string{"STAGE": StageDev, "PORT": "http"}},
		{name: "bad delay", env: map[string]string{"STAGE": StageDev, "PORT": "2024", "AI_ACTION_DELAY": "soon"}},
		{name: "bad idle timeout", env: map[string]string{"STAGE": StageDev, "PORT": "2024", "TURN_IDLE_TIMEOUT": "90"}},
		{name: "negative asteroids", env: map[string]string{"STAGE": StageDev, "PORT": "2024", "ASTEROID_COUNT": "-1"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := FromEnv(lookup(test.env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
