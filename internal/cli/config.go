package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/workload"
)

// Config represents the complete configuration file.
// Maps config file fields through YAML tags
type Config struct {
	Scheduler struct {
		Quantum int64 `yaml:"quantum"`
	} `yaml:"scheduler"`

	Server struct {
		Port     int `yaml:"port"`
		GRPCPort int `yaml:"grpc_port"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	Generator struct {
		workload.Params `yaml:",inline"`
		Seed            int64 `yaml:"seed"`
	} `yaml:"generator"`

	Output struct {
		Color bool `yaml:"color"`
	} `yaml:"output"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Scheduler.Quantum = scheduler.DefaultQuantum
	cfg.Server.Port = 9095
	cfg.Server.GRPCPort = 50051
	cfg.Metrics.Enabled = true
	cfg.Generator.Params = workload.Params{
		Count:          10,
		ArrivalMean:    5,
		ArrivalStd:     2.5,
		BurstMean:      6,
		BurstStd:       2,
		PriorityLambda: 3,
	}
	cfg.Output.Color = true
	return &cfg
}

// loadConfig reads path over the built-in defaults. Keys the file leaves out
// keep their default value.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// resolveConfig is loadConfig, except that a missing file yields the
// defaults.
func resolveConfig(path string) (*Config, error) {
	cfg, err := loadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}
