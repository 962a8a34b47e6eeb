package config

import (
	"errors"
	"fmt"
	"io/fs"

	"equity/meta"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Goroutines int    `env:"EQUITY_GOROUTINES" env-description:"independent search trees"`
	Width      int    `env:"EQUITY_WIDTH" env-description:"children per expansion"`
	Seed       uint64 `env:"EQUITY_SEED" env-description:"random seed, 0 seeds from the clock"`
	LogLevel   string `env:"EQUITY_LOG_LEVEL" env-description:"zerolog level"`
	MetricsDir string `env:"EQUITY_METRICS_DIR" env-description:"directory for run records, empty disables them"`
}

// Load reads the optional dotenv files and then the environment into a Config.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load dotenv: %w", err)
	}

	cfg := &Config{
		Goroutines: meta.GO_ROUTINES,
		Width:      meta.WIDTH,
		LogLevel:   meta.LOG_LEVEL,
	}
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Usage describes the environment variables Load understands.
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
