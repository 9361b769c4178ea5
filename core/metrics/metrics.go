package metrics

import (
	"time"

	"github.com/kilianp07/quote-genie/core/model"
)

// QuoteEvent describes one answered pricing request.
type QuoteEvent struct {
	RequestID      string
	Segment        string
	Category       string
	Source         model.Source
	Price          float64
	WinProbability float64
	Latency        time.Duration
	Time           time.Time
}

// MetricsSink records priced quotes for observability purposes.
type MetricsSink interface {
	RecordQuote(ev QuoteEvent) error
}

// GenerationEvent summarises a synthetic dataset run.
type GenerationEvent struct {
	Records  int
	Wins     int
	Seed     uint64
	Workers  int
	Duration time.Duration
	Time     time.Time
}

// WinRate returns the share of won quotes, or 0 for an empty run.
func (e GenerationEvent) WinRate() float64 {
	if e.Records == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.Records)
}

// GenerationRecorder records dataset generation runs.
type GenerationRecorder interface {
	RecordGeneration(ev GenerationEvent) error
}

// TrainingEvent captures the evaluation scores of a training run.
type TrainingEvent struct {
	TrainRows  int
	TestRows   int
	Accuracy   float64
	AUC        float64
	MarketRMSE float64
	Duration   time.Duration
	Time       time.Time
}

// TrainingRecorder records model training runs.
type TrainingRecorder interface {
	RecordTraining(ev TrainingEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordQuote(QuoteEvent) error           { return nil }
func (NopSink) RecordGeneration(GenerationEvent) error { return nil }
func (NopSink) RecordTraining(TrainingEvent) error     { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordQuote forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordQuote(ev QuoteEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordQuote(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordGeneration forwards to sinks implementing GenerationRecorder.
func (m *MultiSink) RecordGeneration(ev GenerationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(GenerationRecorder); ok {
			if err := rec.RecordGeneration(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTraining forwards to sinks implementing TrainingRecorder.
func (m *MultiSink) RecordTraining(ev TrainingEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TrainingRecorder); ok {
			if err := rec.RecordTraining(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
