package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// WorkerConfig tunes the background task worker. It lives in a TOML file
// because queue priorities are awkward to express in environment variables.
type WorkerConfig struct {
	Queuing QueuingConfig `toml:"queuing"`
}

// QueuingConfig contains concurrency and queue priority settings.
type QueuingConfig struct {
	Concurrency     int            `toml:"concurrency"`
	QueuePriorities map[string]int `toml:"queue_priorities"`
}

// DefaultWorkerConfig applies when no worker config file is given.
func DefaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		Queuing: QueuingConfig{
			Concurrency: 4,
			QueuePriorities: map[string]int{
				"default": 3,
				"email":   6,
			},
		},
	}
}

// LoadWorkerConfig loads worker settings from a TOML file.
func LoadWorkerConfig(filename string) (*WorkerConfig, error) {
	cfg := DefaultWorkerConfig()
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("failed to load worker config: %w", err)
	}
	if cfg.Queuing.Concurrency <= 0 {
		cfg.Queuing.Concurrency = 4
	}
	return cfg, nil
}
