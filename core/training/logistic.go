package training

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// WinClassifier is an L2-regularised logistic regression on preprocessed
// rows that include the quoted price.
type WinClassifier struct {
	Preprocessor *Preprocessor `json:"preprocessor"`
	Weights      []float64     `json:"weights"`
	Bias         float64       `json:"bias"`
}

// FitWinClassifier minimises the mean log-loss plus l2/2·|w|² with L-BFGS.
func FitWinClassifier(rows []Input, labels []bool, l2 float64, maxIter int) (*WinClassifier, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("training: %d rows but %d labels", len(rows), len(labels))
	}
	if !hasBothClasses(labels) {
		return nil, ErrSingleClass
	}
	pre, err := FitPreprocessor(rows, true)
	if err != nil {
		return nil, err
	}
	x := designMatrix(pre, rows)
	n, d := x.Dims()
	y := make([]float64, n)
	for i, l := range labels {
		if l {
			y[i] = 1
		}
	}

	// params = weights followed by the bias
	z := mat.NewVecDense(n, nil)
	resid := mat.NewVecDense(n, nil)
	gw := mat.NewVecDense(d, nil)
	evaluate := func(params []float64) {
		w := mat.NewVecDense(d, params[:d])
		z.MulVec(x, w)
		z.AddVec(z, constVec(n, params[d]))
	}
	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			evaluate(params)
			var loss float64
			for i := 0; i < n; i++ {
				zi := z.AtVec(i)
				loss += math.Max(zi, 0) + math.Log1p(math.Exp(-math.Abs(zi))) - y[i]*zi
			}
			w := params[:d]
			return loss/float64(n) + 0.5*l2*floats.Dot(w, w)
		},
		Grad: func(grad, params []float64) {
			evaluate(params)
			var gb float64
			for i := 0; i < n; i++ {
				r := sigmoid(z.AtVec(i)) - y[i]
				resid.SetVec(i, r)
				gb += r
			}
			gw.MulVec(x.T(), resid)
			for j := 0; j < d; j++ {
				grad[j] = gw.AtVec(j)/float64(n) + l2*params[j]
			}
			grad[d] = gb / float64(n)
		},
	}
	settings := &optimize.Settings{GradientThreshold: 1e-6, MajorIterations: maxIter}
	res, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if res == nil || !allFinite(res.X) {
		if err == nil {
			err = fmt.Errorf("no finite solution")
		}
		return nil, fmt.Errorf("fit win classifier: %w", err)
	}
	// a line search stall near the optimum still leaves a usable point
	return &WinClassifier{
		Preprocessor: pre,
		Weights:      append([]float64(nil), res.X[:d]...),
		Bias:         res.X[d],
	}, nil
}

// PredictProba returns the probability that the quote is won.
func (c *WinClassifier) PredictProba(in Input) float64 {
	return sigmoid(floats.Dot(c.Weights, c.Preprocessor.Transform(in)) + c.Bias)
}

func (c *WinClassifier) validate() error {
	if c.Preprocessor == nil {
		return fmt.Errorf("win classifier: missing preprocessor")
	}
	if err := c.Preprocessor.validate(); err != nil {
		return err
	}
	if len(c.Weights) != c.Preprocessor.Width() {
		return fmt.Errorf("win classifier: %d weights for width %d", len(c.Weights), c.Preprocessor.Width())
	}
	return nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func hasBothClasses(labels []bool) bool {
	var pos, neg bool
	for _, l := range labels {
		if l {
			pos = true
		} else {
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

func designMatrix(pre *Preprocessor, rows []Input) *mat.Dense {
	x := mat.NewDense(len(rows), pre.Width(), nil)
	for i, r := range rows {
		x.SetRow(i, pre.Transform(r))
	}
	return x
}

func constVec(n int, v float64) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return mat.NewVecDense(n, data)
}

func allFinite(v []float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
