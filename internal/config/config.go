package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StageDev  = "dev"
	StageProd = "prod"

	defaultMigrationDir   = "file:db/migration"
	defaultAIActionDelay  = 1200 * time.Millisecond
	defaultAsteroidCount  = 10
	defaultIdleSweepEvery = 30 * time.Second
)

type Config struct {
	Stage        string
	Port         int
	DatabaseURL  string
	MigrationDir string

	AIActionDelay   time.Duration
	TurnIdleTimeout time.Duration
	IdleSweepEvery  time.Duration
	AsteroidCount   int
}

// Load reads the server configuration from the environment. Outside of
// prod the variables are first loaded from a local .env file.
func Load() (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so it can be fed a
// fixed map in tests.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Stage:          getenv("STAGE"),
		DatabaseURL:    getenv("DATABASE_URL"),
		MigrationDir:   defaultMigrationDir,
		AIActionDelay:  defaultAIActionDelay,
		IdleSweepEvery: defaultIdleSweepEvery,
		AsteroidCount:  defaultAsteroidCount,
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod\tgot: %q", cfg.Stage)
	}

	port, err := strconv.Atoi(getenv("PORT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	if dir := getenv("MIGRATION_DIR"); dir != "" {
		cfg.MigrationDir = dir
	}

	if v := getenv("AI_ACTION_DELAY"); v != "" {
		if cfg.AIActionDelay, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("invalid AI_ACTION_DELAY: %w", err)
		}
	}

	if v := getenv("TURN_IDLE_TIMEOUT"); v != "" {
		if cfg.TurnIdleTimeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("invalid TURN_IDLE_TIMEOUT: %w", err)
		}
	}

	if v := getenv("ASTEROID_COUNT"); v != "" {
		if cfg.AsteroidCount, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("invalid ASTEROID_COUNT: %w", err)
		}
		if cfg.AsteroidCount < 0 {
			return Config{}, fmt.Errorf("ASTEROID_COUNT must not be negative\tgot: %d", cfg.AsteroidCount)
		}
	}

	return cfg, nil
}
