package metrics

import "github.com/kilianp07/quote-genie/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Path is where the HTTP server exposes Prometheus metrics.
	Path string `json:"path"`
}
