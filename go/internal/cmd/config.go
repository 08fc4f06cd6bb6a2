package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's yaml configuration. Pacing defaults apply when a
// create request leaves the pacing block empty on the client side; the poll
// interval is a hint the snapshot consumers read at startup.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Engine struct {
		PollIntervalSeconds int `yaml:"poll_interval_seconds"`
		DefaultPacing       struct {
			ResleeveSec int `yaml:"resleeve_sec"`
			LocateSec   int `yaml:"locate_sec"`
			CueSec      int `yaml:"cue_sec"`
			BufferSec   int `yaml:"buffer_sec"`
		} `yaml:"default_pacing"`
	} `yaml:"engine"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func defaultConfig() *Config {
	var c Config
	c.Server.Port = "8080"
	c.Engine.PollIntervalSeconds = 4
	c.Engine.DefaultPacing.ResleeveSec = 15
	c.Engine.DefaultPacing.LocateSec = 20
	c.Engine.DefaultPacing.CueSec = 15
	c.Engine.DefaultPacing.BufferSec = 10
	return &c
}
