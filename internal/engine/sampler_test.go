package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oddsvault/bookrisk/internal/market"
)

func testState() *market.State {
	return &market.State{
		MarketAddress:    "0xtest",
		Status:           "Open",
		CurrentExposure:  4000,
		MaxExposure:      10000,
		HomeOdds:         1.91,
		AwayOdds:         1.91,
		HomeSpreadPoints: -5.5,
		HomeSpreadOdds:   1.91,
		AwaySpreadOdds:   1.91,
		TotalPoints:      221.5,
		OverOdds:         1.91,
		UnderOdds:        1.91,
		ExposureHome:     800,
		ExposureAway:     800,
		ExposureOver:     500,
		ExposureUnder:    500,

		ExposureHomeSpread: 700,
		ExposureAwaySpread: 700,
	}
}

func TestImpliedProbability(t *testing.T) {
	assert.InDelta(t, 0.5, ImpliedProbability(2.0), 1e-9)
	assert.InDelta(t, 1.0, ImpliedProbability(1.0), 1e-9)
	assert.Equal(t, 0.0, ImpliedProbability(0))
	assert.Equal(t, 0.0, ImpliedProbability(-1.5))
}

func TestSample_TotalLandsOnDecidedSide(t *testing.T) {
	st := testState()
	sampler := NewOutcomeSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		out := sampler.Sample(st)
		assert.GreaterOrEqual(t, out.Total, 0.0)
		if out.TotalSide == market.SideOver {
			assert.GreaterOrEqual(t, out.Total, st.TotalPoints+0.5)
		} else {
			assert.LessOrEqual(t, out.Total, st.TotalPoints-0.5)
		}
	}
}

func TestSample_MarginConsistentWithCover(t *testing.T) {
	st := testState()
	sampler := NewOutcomeSampler(rand.New(rand.NewSource(7)))

	// Home is a 5.5-point favorite: home covers iff margin + line > 0.
	for i := 0; i < 1000; i++ {
		out := sampler.Sample(st)
		if out.Cover == market.SideHomeSpread {
			assert.Greater(t, out.Margin+st.HomeSpreadPoints, 0.0)
		} else {
			assert.LessOrEqual(t, out.Margin+st.HomeSpreadPoints, 0.0)
		}
	}
}

func TestSample_WinnerSplitRoughlyMatchesOdds(t *testing.T) {
	st := testState()
	st.HomeOdds = 1.25 // heavy favorite, implied 0.80 vs 0.20
	st.AwayOdds = 5.0
	sampler := NewOutcomeSampler(rand.New(rand.NewSource(99)))

	homeWins := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if sampler.Sample(st).Winner == market.SideHome {
			homeWins++
		}
	}

	// Normalized implied probability: 0.8/(0.8+0.2) = 0.8.
	assert.InDelta(t, 0.8, float64(homeWins)/n, 0.02)
}

func TestSample_ZeroOddsDoesNotPanic(t *testing.T) {
	st := testState()
	st.HomeOdds = 0
	st.AwayOdds = 0
	st.OverOdds = 0
	st.UnderOdds = 0
	sampler := NewOutcomeSampler(rand.New(rand.NewSource(1)))

	assert.NotPanics(t, func() {
		for i := 0; i < 100; i++ {
			out := sampler.Sample(st)
			assert.False(t, math.IsNaN(out.Total))
		}
	})
}

func TestPickWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	assert.Equal(t, -1, pickWeighted(rng, []float64{0, 0, 0}))
	assert.Equal(t, -1, pickWeighted(rng, nil))

	// A single positive weight always wins.
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, pickWeighted(rng, []float64{0, 2.5, 0}))
	}

	// Frequencies track weights.
	counts := make([]int, 3)
	const n = 30000
	for i := 0; i < n; i++ {
		counts[pickWeighted(rng, []float64{0.5, 0.3, 0.2})]++
	}
	assert.InDelta(t, 0.5, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.3, float64(counts[1])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[2])/n, 0.02)
}
