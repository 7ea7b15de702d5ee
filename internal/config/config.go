// Package config loads the CLI configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings for one veclink process.
type Config struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Debug     bool   `toml:"debug"`
	DBPath    string `toml:"db_path"`
	Rounds    int    `toml:"rounds"`
	VectorLen int    `toml:"vector_len"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Host:      "127.0.0.1",
		Port:      9000,
		DBPath:    "veclink.sqlite3",
		Rounds:    10,
		VectorLen: 1024,
	}
}

// Load reads a TOML file and fills unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the transport cannot run with.
func Validate(cfg Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", cfg.Rounds)
	}
	if cfg.VectorLen < 1 {
		return fmt.Errorf("vector_len must be at least 1, got %d", cfg.VectorLen)
	}
	return nil
}
