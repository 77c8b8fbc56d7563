package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load builds the configuration from a YAML file plus the environment,
// with env values winning over the file and tag defaults filling the
// rest. A .env file in the working directory is folded into the
// environment first. The config file path comes from CONFIG_PATH,
// falling back to ./config.yaml. A missing fallback file is fine; a
// missing explicitly configured one is an error.
func Load() (*Config, error) {
	var cfg Config

	// A missing .env is not an error.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	err := cleanenv.ReadConfig(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
