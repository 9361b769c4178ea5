package training

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/model"
	"github.com/kilianp07/quote-genie/core/simulation"
	"github.com/kilianp07/quote-genie/infra/logger"
)

func dataset(t *testing.T, n int) []model.QuoteRecord {
	t.Helper()
	recs, err := simulation.NewAssembler(simulation.Config{Seed: 2024, Workers: 2}, nil, logger.NopLogger{}).
		Generate(context.Background(), n)
	require.NoError(t, err)
	return recs
}

func TestSplit(t *testing.T) {
	recs := dataset(t, 100)
	train, test := Split(recs, 0.2, 42)
	assert.Len(t, train, 80)
	assert.Len(t, test, 20)

	seen := map[int]bool{}
	for _, r := range append(train, test...) {
		require.False(t, seen[r.QuoteID], "duplicate %d", r.QuoteID)
		seen[r.QuoteID] = true
	}
	assert.Len(t, seen, 100)

	train2, test2 := Split(recs, 0.2, 42)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)

	train, test = Split(recs[:1], 0.5, 1)
	assert.Len(t, train, 1)
	assert.Empty(t, test)
}

func TestPreprocessor(t *testing.T) {
	rows := []Input{
		{Features: model.Features{Segment: model.SegmentPremium, Category: model.CategoryHazardous, Weight: 1, Volume: 2, Distance: 3, FuelIndex: 4}, QuotedPrice: 10},
		{Features: model.Features{Segment: model.SegmentStandard, Category: model.CategoryGeneral, Weight: 3, Volume: 2, Distance: 5, FuelIndex: 8}, QuotedPrice: 30},
	}
	p, err := FitPreprocessor(rows, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"weight", "volume", "distance", "fuel_index", "quoted_price"}, p.Columns)
	assert.Equal(t, 12, p.Width())
	// constant column keeps unit scale
	assert.Equal(t, 1.0, p.Std[1])

	out := p.Transform(rows[0])
	assert.Less(t, out[0], 0.0)
	assert.Equal(t, 0.0, out[1])
	assert.Equal(t, 1.0, out[5+int(model.SegmentPremium)])
	assert.Equal(t, 1.0, out[5+3+int(model.CategoryHazardous)])

	unknown := p.Transform(Input{Features: model.Features{Segment: model.Segment(7), Category: model.Category(-2)}})
	for _, v := range unknown[5:] {
		assert.Equal(t, 0.0, v)
	}

	_, err = FitPreprocessor(nil, false)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestFitMarketRegressorRecoversLinearTarget(t *testing.T) {
	var rows []Input
	var y []float64
	for i := 0; i < 200; i++ {
		f := model.Features{
			Segment:   model.Segments[i%3],
			Category:  model.Categories[i%4],
			Weight:    float64(i%17) * 3,
			Volume:    float64(i%5) + 0.5,
			Distance:  float64(50 + 13*i),
			FuelIndex: 90 + float64(i%30),
		}
		rows = append(rows, Input{Features: f})
		y = append(y, 1.25*simulation.Cost(f.Weight, f.Volume, f.Distance, f.FuelIndex))
	}
	m, err := FitMarketRegressor(rows, y, 1e-6)
	require.NoError(t, err)
	for i := 0; i < len(rows); i += 37 {
		assert.InDelta(t, y[i], m.Predict(rows[i]), 0.5)
	}
}

func TestFitWinClassifierErrors(t *testing.T) {
	rows := []Input{{QuotedPrice: 1}, {QuotedPrice: 2}}
	_, err := FitWinClassifier(rows, []bool{true, true}, 0, 10)
	assert.ErrorIs(t, err, ErrSingleClass)
	_, err = FitWinClassifier(nil, nil, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = FitWinClassifier(rows, []bool{true}, 0, 10)
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	probs := []float64{0.1, 0.4, 0.35, 0.8}
	labels := []bool{false, false, true, true}
	assert.InDelta(t, 0.75, AUC(probs, labels), 1e-9)
	assert.InDelta(t, 0.75, Accuracy(probs, labels), 1e-9)
	assert.True(t, math.IsNaN(AUC(probs, []bool{true, true, true, true})))
	assert.InDelta(t, math.Sqrt(2.5), RMSE([]float64{1, 2}, []float64{2, 4}), 1e-12)
}

type trainingSink struct {
	coremetrics.NopSink
	got []coremetrics.TrainingEvent
}

func (s *trainingSink) RecordTraining(ev coremetrics.TrainingEvent) error {
	s.got = append(s.got, ev)
	return nil
}

func TestTrainerEndToEnd(t *testing.T) {
	sink := &trainingSink{}
	tr := NewTrainer(DefaultConfig(), sink, logger.NopLogger{})
	models, rep, err := tr.Train(context.Background(), dataset(t, 5000))
	require.NoError(t, err)

	assert.Equal(t, 4000, rep.TrainRows)
	assert.Equal(t, 1000, rep.TestRows)
	assert.Greater(t, rep.AUC, 0.6)
	assert.Greater(t, rep.Accuracy, 0.5)
	require.Len(t, sink.got, 1)
	assert.Equal(t, rep.AUC, sink.got[0].AUC)

	f := model.Features{Segment: model.SegmentStandard, Category: model.CategoryGeneral, Weight: 100, Volume: 2, Distance: 1000, FuelIndex: 100}
	rate := models.MarketRate(f)
	// cost is 1220 and the market markup averages 1.25
	assert.InDelta(t, 1525, rate, 200)
	cheap := models.WinProbability(f, 0.9*rate)
	dear := models.WinProbability(f, 1.2*rate)
	assert.Greater(t, cheap, dear)

	dir := t.TempDir()
	require.NoError(t, Save(dir, models))
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, rate, loaded.MarketRate(f), 1e-9)
	assert.InDelta(t, cheap, loaded.WinProbability(f, 0.9*rate), 1e-12)
}

func TestTrainerRejectsEmpty(t *testing.T) {
	_, _, err := NewTrainer(DefaultConfig(), nil, logger.NopLogger{}).Train(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.WriteFile(filepath.Join(dir, WinModelFile), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarketModelFile), []byte("{}"), 0o644))
	_, err = Load(dir)
	assert.Error(t, err)
}
