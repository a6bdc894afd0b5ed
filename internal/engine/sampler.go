package engine

import (
	"math"
	"math/rand"

	"github.com/oddsvault/bookrisk/internal/market"
)

// ImpliedProbability converts decimal odds to the raw implied probability
// 1/odds. The bookmaker margin is deliberately left priced in. Non-positive
// odds map to probability 0.
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 {
		return 0
	}
	return 1 / odds
}

// Outcome is one simulated game result: the moneyline winner, the simulated
// total and which side of the line it landed on, and the spread-cover result
// with its simulated margin.
type Outcome struct {
	Winner    market.Side // SideHome or SideAway
	Total     float64
	TotalSide market.Side // SideOver or SideUnder
	Cover     market.Side // SideHomeSpread or SideAwaySpread
	Margin    float64     // home minus away, signed
}

// OutcomeSampler draws simulated game outcomes from a market's priced odds.
// All draws go through the injected RNG so callers can pin a seed.
type OutcomeSampler struct {
	rng *rand.Rand
}

// NewOutcomeSampler creates a sampler backed by the given RNG.
func NewOutcomeSampler(rng *rand.Rand) *OutcomeSampler {
	return &OutcomeSampler{rng: rng}
}

// Sample draws one simulated game outcome for the market.
func (s *OutcomeSampler) Sample(st *market.State) Outcome {
	out := Outcome{}

	out.Winner = s.pickSide(
		ImpliedProbability(st.HomeOdds), ImpliedProbability(st.AwayOdds),
		market.SideHome, market.SideAway,
	)

	out.TotalSide = s.pickSide(
		ImpliedProbability(st.OverOdds), ImpliedProbability(st.UnderOdds),
		market.SideOver, market.SideUnder,
	)
	out.Total = s.sampleTotal(st.TotalPoints, out.TotalSide)

	out.Cover = s.pickSide(
		ImpliedProbability(st.HomeSpreadOdds), ImpliedProbability(st.AwaySpreadOdds),
		market.SideHomeSpread, market.SideAwaySpread,
	)
	out.Margin = s.sampleMargin(st.HomeSpreadPoints, out.Cover)

	return out
}

// pickSide samples one of two sides with probability proportional to the
// given weights, splitting evenly when both weights are zero.
func (s *OutcomeSampler) pickSide(wa, wb float64, a, b market.Side) market.Side {
	total := wa + wb
	pa := 0.5
	if total > 0 {
		pa = wa / total
	}
	if s.rng.Float64() < pa {
		return a
	}
	return b
}

// sampleTotal draws a simulated combined score on the decided side of the
// total line. The magnitude beyond the line is a half-normal deviate with
// standard deviation 0.15 x line, floored at 0.5 so the draw lands strictly
// past the line; the total never goes below zero.
func (s *OutcomeSampler) sampleTotal(line float64, side market.Side) float64 {
	dev := math.Abs(s.rng.NormFloat64()) * 0.15 * line
	if dev < 0.5 {
		dev = 0.5
	}

	var total float64
	if side == market.SideOver {
		total = line + dev
	} else {
		total = line - dev
	}
	if total < 0 {
		total = 0
	}
	return total
}

// sampleMargin draws a signed home-minus-away margin consistent with the
// cover result. Home covers the spread when margin + line > 0, so a covering
// margin sits a half-normal deviate beyond -line; the deviation's standard
// deviation is |line| x 0.5 + 3.0. Only the categorical cover result feeds
// the P&L evaluation; the magnitude is reported for completeness.
func (s *OutcomeSampler) sampleMargin(line float64, cover market.Side) float64 {
	dev := math.Abs(s.rng.NormFloat64()) * (math.Abs(line)*0.5 + 3.0)
	if cover == market.SideHomeSpread {
		return -line + dev
	}
	return -line - dev
}

// pickWeighted samples an index with probability proportional to weights,
// using cumulative-weight inversion over a single uniform draw. Returns -1
// when no weight is positive.
func pickWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	u := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
}
