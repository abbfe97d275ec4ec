package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Run     RunConfig    `toml:"run"`
	Rates   []RateConfig `toml:"rates"`
	Logging LogConfig    `toml:"logging"`
}

type RunConfig struct {
	DurationSeconds float64 `toml:"duration_seconds"`
	Entities        int     `toml:"entities"`
	FrameRate       int     `toml:"frame_rate"`
	GCPauseMetrics  bool    `toml:"gc_pause_metrics"`
}

// RateConfig describes one cadence group to load: how many systems to
// register at the given rate.
type RateConfig struct {
	Rate    int `toml:"rate"`
	Systems int `toml:"systems"`
}

type LogConfig struct {
	Development bool   `toml:"development"`
	Level       string `toml:"level"`
}

func defaultConfig() Config {
	return Config{
		Run: RunConfig{
			DurationSeconds: 10,
			Entities:        10000,
			FrameRate:       120,
		},
		Rates: []RateConfig{
			{Rate: 60, Systems: 2},
			{Rate: 20, Systems: 1},
		},
		Logging: LogConfig{
			Development: true,
			Level:       "info",
		},
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c RunConfig) duration() time.Duration {
	return time.Duration(c.DurationSeconds * float64(time.Second))
}
