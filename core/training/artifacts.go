package training

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kilianp07/quote-genie/core/model"
	"github.com/kilianp07/quote-genie/pkg/export"
)

const (
	// WinModelFile holds the serialised WinClassifier.
	WinModelFile = "win_prob_model.json"
	// MarketModelFile holds the serialised MarketRegressor.
	MarketModelFile = "price_opt_model.json"
)

// Models bundles the fitted classifier and regressor.
type Models struct {
	Win       *WinClassifier
	Market    *MarketRegressor
	TrainedAt time.Time
}

// MarketRate predicts the market rate for the shipment.
func (m *Models) MarketRate(f model.Features) float64 {
	return m.Market.Predict(Input{Features: f})
}

// WinProbability predicts the chance of winning the shipment at price.
func (m *Models) WinProbability(f model.Features, price float64) float64 {
	return m.Win.PredictProba(Input{Features: f, QuotedPrice: price})
}

type envelope[T any] struct {
	Kind      string    `json:"kind"`
	TrainedAt time.Time `json:"trained_at"`
	Model     T         `json:"model"`
}

// Save writes both artifacts into dir.
func Save(dir string, m *Models) error {
	if err := writeArtifact(filepath.Join(dir, WinModelFile), envelope[*WinClassifier]{
		Kind: "win_classifier", TrainedAt: m.TrainedAt, Model: m.Win,
	}); err != nil {
		return err
	}
	return writeArtifact(filepath.Join(dir, MarketModelFile), envelope[*MarketRegressor]{
		Kind: "market_regressor", TrainedAt: m.TrainedAt, Model: m.Market,
	})
}

func writeArtifact(path string, v any) error {
	err := export.WriteAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Load reads both artifacts from dir. A missing file yields an error that
// matches os.ErrNotExist.
func Load(dir string) (*Models, error) {
	var win envelope[*WinClassifier]
	if err := readArtifact(filepath.Join(dir, WinModelFile), &win); err != nil {
		return nil, err
	}
	var market envelope[*MarketRegressor]
	if err := readArtifact(filepath.Join(dir, MarketModelFile), &market); err != nil {
		return nil, err
	}
	if win.Model == nil || market.Model == nil {
		return nil, fmt.Errorf("load models: empty artifact")
	}
	if err := win.Model.validate(); err != nil {
		return nil, err
	}
	if err := market.Model.validate(); err != nil {
		return nil, err
	}
	return &Models{Win: win.Model, Market: market.Model, TrainedAt: win.TrainedAt}, nil
}

func readArtifact(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
