package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// MatrixPath points at a matrix file (.hcl, .yml, .yaml) or a
	// directory of .hcl files.
	MatrixPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Workers bounds job concurrency. Zero means one worker per job.
	Workers int
}

// NewConfig validates and returns an application configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.MatrixPath == "" {
		return nil, errors.New("MatrixPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers cannot be negative")
	}
	return &cfg, nil
}
