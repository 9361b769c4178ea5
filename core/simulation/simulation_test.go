package simulation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/quote-genie/core/model"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestCost(t *testing.T) {
	assert.Equal(t, 50.0, Cost(0, 0, 0, 0))
	assert.InDelta(t, 1220.0, Cost(100, 2, 1000, 100), 1e-9)
}

func TestMarketAndQuoteBounds(t *testing.T) {
	rng := testRand()
	cost := Cost(100, 2, 1000, 100)
	for i := 0; i < 10000; i++ {
		m := MarketRate(rng, cost)
		require.GreaterOrEqual(t, m, 1342.0-1e-9)
		require.LessOrEqual(t, m, 1708.0+1e-9)
		q := QuotedPrice(rng, m)
		require.GreaterOrEqual(t, q, 0.9*m)
		require.LessOrEqual(t, q, 1.2*m)
	}
}

func TestMarketRateDrawsFresh(t *testing.T) {
	rng := testRand()
	a, b := MarketRate(rng, 1000), MarketRate(rng, 1000)
	assert.NotEqual(t, a, b)
}

func TestSensitivityTable(t *testing.T) {
	assert.Equal(t, 0.8, Sensitivity(model.SegmentStandard))
	assert.Equal(t, 0.5, Sensitivity(model.SegmentPremium))
	assert.Equal(t, 0.3, Sensitivity(model.SegmentStrategic))
	assert.Panics(t, func() { Sensitivity(model.Segment(42)) })
}

func TestWinProbabilityMonotoneInPrice(t *testing.T) {
	const market = 1000.0
	prev := -1.0
	for price := 1200.0; price >= 800; price -= 5 {
		p := WinProbability(price, market, 0.8)
		require.GreaterOrEqual(t, p, prev, "price %.0f", price)
		prev = p
	}
}

func TestWinProbabilitySegmentOrdering(t *testing.T) {
	for _, price := range []float64{900, 1000, 1100} {
		std := WinProbability(price, 1000, Sensitivity(model.SegmentStandard))
		prem := WinProbability(price, 1000, Sensitivity(model.SegmentPremium))
		strat := WinProbability(price, 1000, Sensitivity(model.SegmentStrategic))
		assert.GreaterOrEqual(t, strat, prem)
		assert.GreaterOrEqual(t, prem, std)
	}
}

func TestWinEmpiricalRateAtMarket(t *testing.T) {
	const n = 50000
	rng := testRand()
	want := 1 / (1 + math.Exp(-10*0.1*0.2))
	assert.InDelta(t, want, WinProbability(1000, 1000, 0.8), 1e-12)

	wins := 0
	for i := 0; i < n; i++ {
		if Win(rng, 1000, 1000, 0.8) {
			wins++
		}
	}
	// four standard errors of a Bernoulli mean
	tol := 4 * math.Sqrt(want*(1-want)/n)
	assert.InDelta(t, want, float64(wins)/n, tol)
}
