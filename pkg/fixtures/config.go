package fixtures

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// LoadConfig reads a TOML configuration file. Fields left empty fall back to
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML configuration data
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	def := DefaultConfig()
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if len(cfg.Counts) == 0 {
		cfg.Counts = def.Counts
	}
	for _, c := range cfg.Counts {
		if c < 0 {
			return Config{}, fmt.Errorf("invalid count %d in config", c)
		}
	}
	return cfg, nil
}
