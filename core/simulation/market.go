package simulation

import "math/rand/v2"

const (
	MinMarkup = 1.1
	MaxMarkup = 1.4

	MinQuoteFactor = 0.9
	MaxQuoteFactor = 1.2
)

// MarketRate simulates the competitor rate for a shipment of the given cost.
// Each call draws a fresh markup in [MinMarkup, MaxMarkup).
func MarketRate(rng *rand.Rand, cost float64) float64 {
	return cost * uniform(rng, MinMarkup, MaxMarkup)
}

// QuotedPrice simulates the price a sales rep offered around the market rate.
func QuotedPrice(rng *rand.Rand, marketRate float64) float64 {
	return marketRate * uniform(rng, MinQuoteFactor, MaxQuoteFactor)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
