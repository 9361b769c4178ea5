package training

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Accuracy is the share of predictions on the right side of 0.5.
func Accuracy(probs []float64, labels []bool) float64 {
	if len(probs) == 0 {
		return math.NaN()
	}
	hits := 0
	for i, p := range probs {
		if (p >= 0.5) == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(probs))
}

// AUC is the area under the ROC curve, or NaN when only one class is present.
func AUC(probs []float64, labels []bool) float64 {
	if !hasBothClasses(labels) {
		return math.NaN()
	}
	y := append([]float64(nil), probs...)
	classes := append([]bool(nil), labels...)
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// RMSE is the root mean squared error between predictions and targets.
func RMSE(pred, actual []float64) float64 {
	if len(pred) == 0 {
		return math.NaN()
	}
	return floats.Distance(pred, actual, 2) / math.Sqrt(float64(len(pred)))
}
