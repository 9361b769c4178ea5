package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kilianp07/quote-genie/core/simulation"
)

// GeneratorConfig drives the synthetic dataset command.
type GeneratorConfig struct {
	Samples int    `json:"samples"`
	Output  string `json:"output"`
	// Seed 0 picks a random seed per run.
	Seed    uint64 `json:"seed"`
	Workers int    `json:"workers"`
}

// SetDefaults applies sane defaults.
func (c *GeneratorConfig) SetDefaults() {
	if c.Samples == 0 {
		c.Samples = simulation.DefaultSamples
	}
	if c.Output == "" {
		c.Output = simulation.DefaultOutput
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks mandatory fields.
func (c GeneratorConfig) Validate() error {
	if c.Samples < 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	switch ext := strings.ToLower(filepath.Ext(c.Output)); ext {
	case ".csv", ".json", ".xlsx":
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	return nil
}

// Assembler returns the assembler settings.
func (c GeneratorConfig) Assembler() simulation.Config {
	return simulation.Config{Seed: c.Seed, Workers: c.Workers}
}
