package training

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/quote-genie/core/model"
)

// Input is one row seen by a model: the shipment features and, for the win
// classifier, the price being evaluated.
type Input struct {
	model.Features
	QuotedPrice float64
}

// Preprocessor standardises numerical columns and one-hot encodes the
// segment and category. Enum values outside the known set encode as zeros.
type Preprocessor struct {
	WithPrice bool      `json:"with_price"`
	Columns   []string  `json:"columns"`
	Mean      []float64 `json:"mean"`
	Std       []float64 `json:"std"`
}

func numericColumns(withPrice bool) []string {
	cols := []string{"weight", "volume", "distance", "fuel_index"}
	if withPrice {
		cols = append(cols, "quoted_price")
	}
	return cols
}

func (p *Preprocessor) numeric(in Input) []float64 {
	v := []float64{in.Weight, in.Volume, in.Distance, in.FuelIndex}
	if p.WithPrice {
		v = append(v, in.QuotedPrice)
	}
	return v
}

// FitPreprocessor learns column means and standard deviations from rows.
func FitPreprocessor(rows []Input, withPrice bool) (*Preprocessor, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	p := &Preprocessor{WithPrice: withPrice, Columns: numericColumns(withPrice)}
	cols := make([][]float64, len(p.Columns))
	for _, r := range rows {
		for j, v := range p.numeric(r) {
			cols[j] = append(cols[j], v)
		}
	}
	p.Mean = make([]float64, len(cols))
	p.Std = make([]float64, len(cols))
	for j, c := range cols {
		mean, std := stat.MeanStdDev(c, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		p.Mean[j], p.Std[j] = mean, std
	}
	return p, nil
}

// Width is the length of a transformed row.
func (p *Preprocessor) Width() int {
	return len(p.Columns) + len(model.Segments) + len(model.Categories)
}

// Transform encodes one row.
func (p *Preprocessor) Transform(in Input) []float64 {
	out := make([]float64, p.Width())
	for j, v := range p.numeric(in) {
		out[j] = (v - p.Mean[j]) / p.Std[j]
	}
	off := len(p.Columns)
	if s := int(in.Segment); s >= 0 && s < len(model.Segments) {
		out[off+s] = 1
	}
	off += len(model.Segments)
	if c := int(in.Category); c >= 0 && c < len(model.Categories) {
		out[off+c] = 1
	}
	return out
}

func (p *Preprocessor) validate() error {
	if len(p.Columns) != len(numericColumns(p.WithPrice)) || len(p.Mean) != len(p.Columns) || len(p.Std) != len(p.Columns) {
		return fmt.Errorf("preprocessor shape mismatch: %d columns, %d means, %d stds", len(p.Columns), len(p.Mean), len(p.Std))
	}
	return nil
}
