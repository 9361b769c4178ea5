package training

import (
	"context"
	"time"

	"github.com/kilianp07/quote-genie/core/logger"
	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/model"
)

// Config tunes a training run.
type Config struct {
	TestSize      float64
	Seed          uint64
	L2            float64
	Ridge         float64
	MaxIterations int
}

// DefaultConfig mirrors the settings used for the shipped models.
func DefaultConfig() Config {
	return Config{TestSize: 0.2, Seed: 42, L2: 1e-4, Ridge: 1e-3, MaxIterations: 500}
}

// Report holds hold-out scores of a training run.
type Report struct {
	TrainRows  int
	TestRows   int
	Accuracy   float64
	AUC        float64
	MarketRMSE float64
	Duration   time.Duration
}

// Trainer fits both models from historical quotes.
type Trainer struct {
	cfg  Config
	sink coremetrics.MetricsSink
	log  logger.Logger
}

// NewTrainer returns a Trainer. A nil sink disables run reporting.
func NewTrainer(cfg Config, sink coremetrics.MetricsSink, log logger.Logger) *Trainer {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Trainer{cfg: cfg, sink: sink, log: log}
}

// Train splits recs, fits the classifier and the regressor on the training
// partition and scores them on the hold-out partition.
func (t *Trainer) Train(ctx context.Context, recs []model.QuoteRecord) (*Models, Report, error) {
	start := time.Now()
	if len(recs) == 0 {
		return nil, Report{}, ErrEmptyDataset
	}
	train, test := Split(recs, t.cfg.TestSize, t.cfg.Seed)
	rep := Report{TrainRows: len(train), TestRows: len(test)}

	trainWin, labels := winRows(train)
	if err := ctx.Err(); err != nil {
		return nil, rep, err
	}
	t.log.Infof("training win probability model on %d rows", len(train))
	win, err := FitWinClassifier(trainWin, labels, t.cfg.L2, t.cfg.MaxIterations)
	if err != nil {
		return nil, rep, err
	}

	if err := ctx.Err(); err != nil {
		return nil, rep, err
	}
	t.log.Infof("training market rate estimator on %d rows", len(train))
	trainMarket, targets := marketRows(train)
	market, err := FitMarketRegressor(trainMarket, targets, t.cfg.Ridge)
	if err != nil {
		return nil, rep, err
	}

	if len(test) > 0 {
		testWin, testLabels := winRows(test)
		probs := make([]float64, len(testWin))
		for i, in := range testWin {
			probs[i] = win.PredictProba(in)
		}
		rep.Accuracy = Accuracy(probs, testLabels)
		rep.AUC = AUC(probs, testLabels)

		testMarket, actual := marketRows(test)
		pred := make([]float64, len(testMarket))
		for i, in := range testMarket {
			pred[i] = market.Predict(in)
		}
		rep.MarketRMSE = RMSE(pred, actual)
	}
	rep.Duration = time.Since(start)
	t.log.Infof("win model accuracy=%.4f auc=%.4f, market rate rmse=%.2f", rep.Accuracy, rep.AUC, rep.MarketRMSE)

	if rec, ok := t.sink.(coremetrics.TrainingRecorder); ok {
		if err := rec.RecordTraining(coremetrics.TrainingEvent{
			TrainRows:  rep.TrainRows,
			TestRows:   rep.TestRows,
			Accuracy:   rep.Accuracy,
			AUC:        rep.AUC,
			MarketRMSE: rep.MarketRMSE,
			Duration:   rep.Duration,
			Time:       time.Now(),
		}); err != nil {
			t.log.Warnf("record training: %v", err)
		}
	}
	return &Models{Win: win, Market: market, TrainedAt: time.Now().UTC()}, rep, nil
}

func winRows(recs []model.QuoteRecord) ([]Input, []bool) {
	rows := make([]Input, len(recs))
	labels := make([]bool, len(recs))
	for i, r := range recs {
		rows[i] = Input{Features: r.Features(), QuotedPrice: r.QuotedPrice}
		labels[i] = r.Win
	}
	return rows, labels
}

func marketRows(recs []model.QuoteRecord) ([]Input, []float64) {
	rows := make([]Input, len(recs))
	targets := make([]float64, len(recs))
	for i, r := range recs {
		rows[i] = Input{Features: r.Features()}
		targets[i] = r.MarketRate
	}
	return rows, targets
}
