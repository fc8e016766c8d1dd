package csa

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config drives the batch commands. Values come from config.json, then
// CSA_* environment variables, then command-line flags.
type Config struct {
	Input    string `json:"input" env:"CSA_INPUT"`
	Output   string `json:"output" env:"CSA_OUTPUT"`
	Workers  int    `json:"workers" env:"CSA_WORKERS"`
	Parallel int64  `json:"parallel" env:"CSA_PARQUET_PARALLEL"`
	Strict   bool   `json:"strict" env:"CSA_STRICT"`
}

func DefaultConfig() Config {
	return Config{
		Input:    "records",
		Output:   "records.parquet",
		Workers:  1,
		Parallel: 4,
	}
}

// FindConfigPath walks up from the working directory looking for
// config.json and returns its path and directory.
func FindConfigPath() (string, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	dir := cwd
	for {
		path := filepath.Join(dir, "config.json")
		if _, err := os.Stat(path); err == nil {
			return path, filepath.Dir(path), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", "", fmt.Errorf("config.json not found from %s", cwd)
}

// LoadConfig reads path over the defaults, then applies environment
// overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be >= 1, got %d", c.Parallel)
	}
	return nil
}
