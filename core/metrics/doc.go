// Package metrics defines the sinks that observe the quote pipeline. Every
// sink records priced quotes; sinks may additionally implement
// GenerationRecorder or TrainingRecorder to observe dataset generation and
// model training. Sinks are created from configuration through the factory
// registry and combined with NewMultiSink when several are configured.
package metrics
