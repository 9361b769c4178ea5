package training

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MarketRegressor predicts the market rate of a shipment with a ridge
// regression on preprocessed features. The quoted price is not an input.
type MarketRegressor struct {
	Preprocessor *Preprocessor `json:"preprocessor"`
	Weights      []float64     `json:"weights"`
	Bias         float64       `json:"bias"`
}

// FitMarketRegressor solves (AᵀA + λD)β = Aᵀy with a Cholesky factorisation,
// where A carries a trailing intercept column that D leaves unpenalised.
func FitMarketRegressor(rows []Input, targets []float64, lambda float64) (*MarketRegressor, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(rows) != len(targets) {
		return nil, fmt.Errorf("training: %d rows but %d targets", len(rows), len(targets))
	}
	pre, err := FitPreprocessor(rows, false)
	if err != nil {
		return nil, err
	}
	d := pre.Width()
	a := mat.NewDense(len(rows), d+1, nil)
	for i, r := range rows {
		row := append(pre.Transform(r), 1)
		a.SetRow(i, row)
	}

	var ata mat.SymDense
	ata.SymOuterK(1, a.T())
	for j := 0; j < d; j++ {
		ata.SetSym(j, j, ata.At(j, j)+lambda)
	}
	var aty mat.VecDense
	aty.MulVec(a.T(), mat.NewVecDense(len(targets), targets))

	var chol mat.Cholesky
	if ok := chol.Factorize(&ata); !ok {
		return nil, errors.New("fit market regressor: normal equations not positive definite")
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &aty); err != nil {
		return nil, fmt.Errorf("fit market regressor: %w", err)
	}
	raw := beta.RawVector().Data
	if !allFinite(raw) {
		return nil, errors.New("fit market regressor: non-finite coefficients")
	}
	return &MarketRegressor{
		Preprocessor: pre,
		Weights:      append([]float64(nil), raw[:d]...),
		Bias:         raw[d],
	}, nil
}

// Predict returns the estimated market rate.
func (m *MarketRegressor) Predict(f Input) float64 {
	return floats.Dot(m.Weights, m.Preprocessor.Transform(f)) + m.Bias
}

func (m *MarketRegressor) validate() error {
	if m.Preprocessor == nil {
		return fmt.Errorf("market regressor: missing preprocessor")
	}
	if err := m.Preprocessor.validate(); err != nil {
		return err
	}
	if len(m.Weights) != m.Preprocessor.Width() {
		return fmt.Errorf("market regressor: %d weights for width %d", len(m.Weights), m.Preprocessor.Width())
	}
	return nil
}
