// Package config loads server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/graphsight/graphsight/pkg/validation"
)

// Config is the full configuration for the analysis server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `yaml:"address" validate:"required"`
	Port            int           `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" validate:"min=0"`
}

// AnalysisConfig configures report shape and engine behavior.
type AnalysisConfig struct {
	TopRankings         int     `yaml:"top_rankings" validate:"min=1,max=100"`
	RecommendationLimit int     `yaml:"recommendation_limit" validate:"min=1,max=100"`
	AnomalyLimit        int     `yaml:"anomaly_limit" validate:"min=1,max=1000"`
	AnomalyThreshold    float64 `yaml:"anomaly_threshold" validate:"gt=0,lte=1"`
	SampleCutoff        int     `yaml:"sample_cutoff" validate:"min=0"`
	Workers             int     `yaml:"workers" validate:"min=0"`
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxUploadBytes:  16 << 20,
		},
		Analysis: AnalysisConfig{
			TopRankings:         5,
			RecommendationLimit: 5,
			AnomalyLimit:        10,
			AnomalyThreshold:    0.1,
			SampleCutoff:        100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads YAML from path on top of the defaults, applies environment
// overrides and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	if err := validation.Struct(c.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validation.Struct(c.Analysis); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := validation.Struct(c.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// applyEnv overlays GRAPHSIGHT_* environment variables. Unparseable values
// are ignored rather than failing startup.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GRAPHSIGHT_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("GRAPHSIGHT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GRAPHSIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GRAPHSIGHT_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = workers
		}
	}
	if v := os.Getenv("GRAPHSIGHT_SAMPLE_CUTOFF"); v != "" {
		if cutoff, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.SampleCutoff = cutoff
		}
	}
}

// ListenAddr returns the host:port string for the HTTP listener.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
