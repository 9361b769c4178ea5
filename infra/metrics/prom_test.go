package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/model"
)

func TestPromSink_RecordQuote(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.QuoteEvent{
		Source:         model.SourceModel,
		Segment:        "Premium",
		Category:       "General",
		Price:          420,
		WinProbability: 0.6,
		Latency:        3 * time.Millisecond,
	}
	require.NoError(t, sink.RecordQuote(ev))
	require.NoError(t, sink.RecordQuote(ev))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.quotes.WithLabelValues("model", "Premium", "General")))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.quotes.WithLabelValues("fallback", "Premium", "General")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.price, "quote_recommended_price"))
}

func TestPromSink_GenerationAndTraining(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordGeneration(coremetrics.GenerationEvent{Records: 200, Wins: 50, Duration: 2 * time.Second}))
	require.NoError(t, sink.RecordGeneration(coremetrics.GenerationEvent{Records: 100, Wins: 50, Duration: time.Second}))
	assert.Equal(t, 300.0, testutil.ToFloat64(sink.generated))
	assert.Equal(t, 0.5, testutil.ToFloat64(sink.winRate))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.genSeconds))

	require.NoError(t, sink.RecordTraining(coremetrics.TrainingEvent{Accuracy: 0.8, AUC: 0.85, MarketRMSE: 120}))
	expected := `
# HELP model_win_auc Test ROC AUC of the last trained win classifier
# TYPE model_win_auc gauge
model_win_auc 0.85
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "model_win_auc"))
	assert.Equal(t, 120.0, testutil.ToFloat64(sink.rmse))
}

func TestPromSink_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordQuote(coremetrics.QuoteEvent{Source: model.SourceFallback, Segment: "Standard", Category: "General"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.quotes.WithLabelValues("fallback", "Standard", "General")))
}

func TestFactoryRegistersSinks(t *testing.T) {
	for _, typ := range []string{"nop", "prometheus", "influx"} {
		assert.Contains(t, coremetrics.SinkTypes(), typ)
	}
}
