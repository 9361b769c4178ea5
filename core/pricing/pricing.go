// Package pricing answers single-quote requests with the trained models,
// falling back to a static formula when they are unavailable.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kilianp07/quote-genie/core/logger"
	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/model"
)

// ErrModelsNotLoaded is returned by model-only paths when no predictor is set.
var ErrModelsNotLoaded = errors.New("pricing: models not loaded")

// Predictor is the trained model pair used on the model path.
type Predictor interface {
	MarketRate(f model.Features) float64
	WinProbability(f model.Features, price float64) float64
}

// Config holds the inference-time constants.
type Config struct {
	// PlaceholderDistance stands in for the origin/destination distance.
	PlaceholderDistance float64
	// PlaceholderFuelIndex stands in for the current fuel index.
	PlaceholderFuelIndex float64
}

// DefaultConfig returns the placeholders used by the shipped service.
func DefaultConfig() Config {
	return Config{PlaceholderDistance: 500, PlaceholderFuelIndex: 100}
}

const (
	fallbackBaseRate    = 100.0
	fallbackWinProb     = 0.75
	fallbackSpread      = 0.10
	modelSpread         = 0.05
	marketConditionBias = 20.0
)

// Quoter prices quote requests.
type Quoter struct {
	cfg  Config
	pred atomic.Pointer[predictorBox]
	sink coremetrics.MetricsSink
	log  logger.Logger
}

type predictorBox struct{ p Predictor }

// NewQuoter returns a Quoter. pred and sink may be nil.
func NewQuoter(cfg Config, pred Predictor, sink coremetrics.MetricsSink, log logger.Logger) *Quoter {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	q := &Quoter{cfg: cfg, sink: sink, log: log}
	q.SetPredictor(pred)
	return q
}

// SetPredictor swaps the models used for subsequent quotes; nil switches to
// the fallback formula.
func (q *Quoter) SetPredictor(p Predictor) {
	if p == nil {
		q.pred.Store(nil)
		return
	}
	q.pred.Store(&predictorBox{p: p})
}

// Predictor returns the current models or ErrModelsNotLoaded.
func (q *Quoter) Predictor() (Predictor, error) {
	box := q.pred.Load()
	if box == nil {
		return nil, ErrModelsNotLoaded
	}
	return box.p, nil
}

// ModelsLoaded reports whether the model path is available.
func (q *Quoter) ModelsLoaded() bool { return q.pred.Load() != nil }

// Quote prices req. Inference problems are logged and answered with the
// fallback formula. Unknown segment or category values and a done context
// are returned as errors.
func (q *Quoter) Quote(ctx context.Context, req model.QuoteRequest) (model.Quote, error) {
	start := time.Now()
	seg, err := model.ParseSegment(req.CustomerSegment)
	if err != nil {
		return model.Quote{}, err
	}
	cat, err := model.ParseCategory(req.ProductCategory)
	if err != nil {
		return model.Quote{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Quote{}, err
	}

	quote := Fallback(req)
	pred, err := q.Predictor()
	switch {
	case errors.Is(err, ErrModelsNotLoaded):
		q.log.Debugf("no models loaded, using fallback")
	case err != nil:
		return model.Quote{}, err
	default:
		f := model.Features{
			Segment:   seg,
			Category:  cat,
			Weight:    req.Weight,
			Volume:    req.Volume,
			Distance:  q.cfg.PlaceholderDistance,
			FuelIndex: q.cfg.PlaceholderFuelIndex,
		}
		mq, err := modelQuote(pred, f, req)
		if err != nil {
			q.log.Errorf("inference error, using fallback: %v", err)
		} else {
			quote = mq
		}
	}
	quote.RequestID = uuid.NewString()

	ev := coremetrics.QuoteEvent{
		RequestID:      quote.RequestID,
		Segment:        seg.String(),
		Category:       cat.String(),
		Source:         quote.Source,
		Price:          quote.RecommendedPrice,
		WinProbability: quote.WinProbability,
		Latency:        time.Since(start),
		Time:           time.Now(),
	}
	q.log.Debugw("quote priced", map[string]any{
		"request_id": quote.RequestID,
		"source":     string(quote.Source),
		"price":      quote.RecommendedPrice,
		"latency_ms": ev.Latency.Milliseconds(),
	})
	if err := q.sink.RecordQuote(ev); err != nil {
		q.log.Warnf("record quote %s: %v", quote.RequestID, err)
	}
	return quote, nil
}

// Fallback is the static pricing formula used without models.
func Fallback(req model.QuoteRequest) model.Quote {
	price := fallbackBaseRate + req.Weight*0.5 + req.Volume*100
	return model.Quote{
		RecommendedPrice:   cents(price),
		WinProbability:     fallbackWinProb,
		ConfidenceInterval: interval(price, fallbackSpread),
		ShapValues: map[string]float64{
			"weight": req.Weight * 0.1,
			"volume": req.Volume * 10,
		},
		Source: model.SourceFallback,
	}
}

// modelQuote recommends the predicted market rate and scores it.
func modelQuote(p Predictor, f model.Features, req model.QuoteRequest) (q model.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predictor panic: %v", r)
		}
	}()
	price := p.MarketRate(f)
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return q, fmt.Errorf("invalid market rate %v", price)
	}
	prob := p.WinProbability(f, price)
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return q, fmt.Errorf("invalid win probability %v", prob)
	}
	return model.Quote{
		RecommendedPrice:   cents(price),
		WinProbability:     prob,
		ConfidenceInterval: interval(price, modelSpread),
		ShapValues: map[string]float64{
			"Weight Impact": req.Weight * 0.5,
			"Market Cond.":  marketConditionBias,
		},
		Source: model.SourceModel,
	}, nil
}

func interval(price, spread float64) [2]float64 {
	return [2]float64{cents(price * (1 - spread)), cents(price * (1 + spread))}
}

func cents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
