package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
)

// PromSink records quote, generation and training events in Prometheus metrics.
type PromSink struct {
	quotes     *prometheus.CounterVec
	price      *prometheus.HistogramVec
	winProb    *prometheus.HistogramVec
	latency    *prometheus.HistogramVec
	generated  prometheus.Counter
	winRate    prometheus.Gauge
	genSeconds prometheus.Gauge
	accuracy   prometheus.Gauge
	auc        prometheus.Gauge
	rmse       prometheus.Gauge
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The /metrics endpoint is served by the HTTP server.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotes_priced_total",
			Help: "Total number of priced quotes",
		}, []string{"source", "segment", "category"}),
		price: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quote_recommended_price",
			Help:    "Recommended price of answered quotes",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		}, []string{"source"}),
		winProb: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quote_win_probability",
			Help:    "Predicted win probability of answered quotes",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		}, []string{"source"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quote_latency_seconds",
			Help:    "Time spent pricing a quote",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_records_generated_total",
			Help: "Total number of synthetic quotes generated",
		}),
		winRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_win_rate",
			Help: "Share of won quotes in the last generated dataset",
		}),
		genSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_generation_seconds",
			Help: "Duration of the last dataset generation",
		}),
		accuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "model_win_accuracy",
			Help: "Test accuracy of the last trained win classifier",
		}),
		auc: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "model_win_auc",
			Help: "Test ROC AUC of the last trained win classifier",
		}),
		rmse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "model_market_rmse",
			Help: "Test RMSE of the last trained market-rate regressor",
		}),
	}

	var err error
	if s.quotes, err = register(reg, s.quotes); err != nil {
		return nil, err
	}
	if s.price, err = register(reg, s.price); err != nil {
		return nil, err
	}
	if s.winProb, err = register(reg, s.winProb); err != nil {
		return nil, err
	}
	if s.latency, err = register(reg, s.latency); err != nil {
		return nil, err
	}
	if s.generated, err = register(reg, s.generated); err != nil {
		return nil, err
	}
	for _, g := range []*prometheus.Gauge{&s.winRate, &s.genSeconds, &s.accuracy, &s.auc, &s.rmse} {
		if *g, err = register(reg, *g); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// register adds c to reg or returns the collector registered before it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordQuote counts the quote and observes its price, probability and latency.
func (s *PromSink) RecordQuote(ev coremetrics.QuoteEvent) error {
	src := string(ev.Source)
	s.quotes.WithLabelValues(src, ev.Segment, ev.Category).Inc()
	s.price.WithLabelValues(src).Observe(ev.Price)
	s.winProb.WithLabelValues(src).Observe(ev.WinProbability)
	s.latency.WithLabelValues(src).Observe(ev.Latency.Seconds())
	return nil
}

// RecordGeneration updates the dataset gauges.
func (s *PromSink) RecordGeneration(ev coremetrics.GenerationEvent) error {
	s.generated.Add(float64(ev.Records))
	s.winRate.Set(ev.WinRate())
	s.genSeconds.Set(ev.Duration.Seconds())
	return nil
}

// RecordTraining updates the model evaluation gauges.
func (s *PromSink) RecordTraining(ev coremetrics.TrainingEvent) error {
	s.accuracy.Set(ev.Accuracy)
	s.auc.Set(ev.AUC)
	s.rmse.Set(ev.MarketRMSE)
	return nil
}
