package main

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// config holds the CLI defaults; every value can be overridden per run with
// flags.
type config struct {
	Mods      []string
	ClockRate float64
	Lazer     bool
}

func defaultConfig() config {
	return config{Mods: []string{"NM"}, Lazer: true}
}

// loadConfig reads the YAML config file. Scalars are converted leniently, so
// "clock_rate: 1" and "clock_rate: 1.0" both work.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if v, ok := raw["mods"]; ok {
		cfg.Mods = cast.ToStringSlice(v)
	}

	if v, ok := raw["clock_rate"]; ok {
		cfg.ClockRate = cast.ToFloat64(v)
	}

	if v, ok := raw["lazer"]; ok {
		cfg.Lazer = cast.ToBool(v)
	}

	return cfg, nil
}
