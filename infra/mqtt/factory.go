package mqtt

import (
	"github.com/kilianp07/quote-genie/core/factory"
	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
)

// init registers the quote publisher as the "mqtt" metrics sink.
func init() {
	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		pub, err := NewPublisher(c)
		if err != nil {
			return nil, err
		}
		return pub, nil
	})
}
