package config

import (
	"fmt"

	"github.com/kilianp07/quote-genie/core/training"
)

// TrainingConfig drives the train command.
type TrainingConfig struct {
	// Data is the historical dataset to fit on.
	Data string `json:"data"`
	// ModelDir receives the model artifacts and is read back by the server.
	ModelDir      string  `json:"model_dir"`
	TestSize      float64 `json:"test_size"`
	Seed          uint64  `json:"seed"`
	L2            float64 `json:"l2"`
	Ridge         float64 `json:"ridge"`
	MaxIterations int     `json:"max_iterations"`
}

// SetDefaults applies sane defaults.
func (c *TrainingConfig) SetDefaults() {
	def := training.DefaultConfig()
	if c.Data == "" {
		c.Data = "data/historical_quotes.csv"
	}
	if c.ModelDir == "" {
		c.ModelDir = "models"
	}
	if c.TestSize == 0 {
		c.TestSize = def.TestSize
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	if c.L2 == 0 {
		c.L2 = def.L2
	}
	if c.Ridge == 0 {
		c.Ridge = def.Ridge
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = def.MaxIterations
	}
}

// Validate checks mandatory fields.
func (c TrainingConfig) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("test_size must be in (0, 1), got %v", c.TestSize)
	}
	if c.L2 < 0 || c.Ridge < 0 {
		return fmt.Errorf("regularisation must not be negative")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must not be negative")
	}
	return nil
}

// Trainer returns the trainer settings.
func (c TrainingConfig) Trainer() training.Config {
	return training.Config{
		TestSize:      c.TestSize,
		Seed:          c.Seed,
		L2:            c.L2,
		Ridge:         c.Ridge,
		MaxIterations: c.MaxIterations,
	}
}
