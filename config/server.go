package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/quote-genie/core/pricing"
)

// ServerConfig drives the serve command.
type ServerConfig struct {
	Addr string `json:"addr"`
	// ModelDir overrides training.model_dir for the server.
	ModelDir             string  `json:"model_dir"`
	PlaceholderDistance  float64 `json:"placeholder_distance"`
	PlaceholderFuelIndex float64 `json:"placeholder_fuel_index"`
	ReadTimeoutSeconds   int     `json:"read_timeout_seconds"`
	ShutdownTimeoutSec   int     `json:"shutdown_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	def := pricing.DefaultConfig()
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.PlaceholderDistance == 0 {
		c.PlaceholderDistance = def.PlaceholderDistance
	}
	if c.PlaceholderFuelIndex == 0 {
		c.PlaceholderFuelIndex = def.PlaceholderFuelIndex
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.ShutdownTimeoutSec == 0 {
		c.ShutdownTimeoutSec = 5
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.PlaceholderDistance < 0 || c.PlaceholderFuelIndex < 0 {
		return fmt.Errorf("placeholders must not be negative")
	}
	return nil
}

// Pricing returns the quoter settings.
func (c ServerConfig) Pricing() pricing.Config {
	return pricing.Config{
		PlaceholderDistance:  c.PlaceholderDistance,
		PlaceholderFuelIndex: c.PlaceholderFuelIndex,
	}
}

// ReadTimeout returns the HTTP read timeout.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
