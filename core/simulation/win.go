package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/kilianp07/quote-genie/core/model"
)

const (
	// steepness of the logistic curve; a 10% price gap moves the
	// probability most of the way between 0 and 1.
	winSteepness = 10.0
	loyaltyBias  = 0.1
)

// Sensitivity returns how strongly a segment reacts to the price gap.
// It panics on a value outside the Segment enum.
func Sensitivity(s model.Segment) float64 {
	switch s {
	case model.SegmentStandard:
		return 0.8
	case model.SegmentPremium:
		return 0.5
	case model.SegmentStrategic:
		return 0.3
	}
	panic(fmt.Sprintf("simulation: no sensitivity for %v", s))
}

// WinProbability is the chance that a quote is accepted given the market
// rate and the customer's price sensitivity.
func WinProbability(quotedPrice, marketRate, sensitivity float64) float64 {
	diff := (marketRate - quotedPrice) / marketRate
	adjusted := diff + loyaltyBias*(1-sensitivity)
	return 1 / (1 + math.Exp(-winSteepness*adjusted))
}

// Win samples the outcome of a quote with an independent uniform draw.
func Win(rng *rand.Rand, quotedPrice, marketRate, sensitivity float64) bool {
	return rng.Float64() < WinProbability(quotedPrice, marketRate, sensitivity)
}
