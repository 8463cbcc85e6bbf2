package models

import (
	"derivative-pricer/internal/errors"
)

// Default simulation settings.
const (
	DefaultPaths      = 100_000
	DefaultSteps      = 1
	DefaultConfidence = 0.95
)

// SimulationConfig represents the Monte-Carlo run parameters. A zero Seed
// means a wall-clock-derived master seed; a zero Workers count means one
// worker per available CPU.
type SimulationConfig struct {
	Paths      int
	Steps      int
	Seed       uint64
	Antithetic bool
	Confidence float64
	Workers    int
}

// DefaultSimulationConfig returns the standard single-step configuration.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Paths:      DefaultPaths,
		Steps:      DefaultSteps,
		Confidence: DefaultConfidence,
	}
}

// Validate checks the simulation parameters.
func (c SimulationConfig) Validate() error {
	if c.Paths <= 0 {
		return errors.NewValidationError("paths", c.Paths, "must be positive")
	}
	if c.Steps < 1 {
		return errors.NewValidationError("steps", c.Steps, "must be at least 1")
	}
	if !finite(c.Confidence) || c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.NewValidationError("confidence", c.Confidence, "must be strictly between 0 and 1")
	}
	if c.Workers < 0 {
		return errors.NewValidationError("workers", c.Workers, "must be non-negative")
	}
	return nil
}
