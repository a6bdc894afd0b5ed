package engine

import (
	"math"
	"math/rand"

	"github.com/oddsvault/bookrisk/internal/market"
)

// Synthetic order-flow parameters. Batch sizes follow N(50, 20) scaled by the
// market's liquidity headroom; stakes follow Pareto(shape=3) scaled by 50.
const (
	batchSizeMean   = 50.0
	batchSizeStdDev = 20.0
	paretoShape     = 3.0
	paretoScale     = 50.0
	maxBetFraction  = 0.10 // single-bet cap as a fraction of max exposure
)

// Bet family selection weights: most simulated flow is moneyline.
var familyWeights = []float64{0.5, 0.3, 0.2}

var familySides = [][2]market.Side{
	{market.SideHome, market.SideAway},
	{market.SideHomeSpread, market.SideAwaySpread},
	{market.SideOver, market.SideUnder},
}

// Bet is one synthetic wager in a simulated trial.
type Bet struct {
	Side   market.Side
	Odds   float64
	Amount float64
}

// OrderFlowSimulator generates a synthetic batch of bets for one trial,
// biased toward the side of each pair carrying less recorded exposure: the
// model assumes sharp money hunts the under-exposed side.
type OrderFlowSimulator struct {
	rng *rand.Rand
}

// NewOrderFlowSimulator creates a simulator backed by the given RNG.
func NewOrderFlowSimulator(rng *rand.Rand) *OrderFlowSimulator {
	return &OrderFlowSimulator{rng: rng}
}

// SimulateBatch draws one trial's worth of synthetic bets. A market with no
// liquidity headroom attracts no new flow.
func (o *OrderFlowSimulator) SimulateBatch(st *market.State) []Bet {
	n := o.batchSize(st)
	if n <= 0 {
		return nil
	}

	bets := make([]Bet, 0, n)
	for i := 0; i < n; i++ {
		if bet, ok := o.simulateBet(st); ok {
			bets = append(bets, bet)
		}
	}
	return bets
}

// batchSize draws the number of bets for one trial: N(50, 20) scaled by the
// liquidity headroom factor. Negative draws round to zero.
func (o *OrderFlowSimulator) batchSize(st *market.State) int {
	raw := o.rng.NormFloat64()*batchSizeStdDev + batchSizeMean
	n := int(math.Round(raw * st.LiquidityHeadroom()))
	if n < 0 {
		return 0
	}
	return n
}

func (o *OrderFlowSimulator) simulateBet(st *market.State) (Bet, bool) {
	family := pickWeighted(o.rng, familyWeights)
	if family < 0 {
		return Bet{}, false
	}

	sideA, sideB := familySides[family][0], familySides[family][1]
	side := o.pickBetSide(st, sideA, sideB)
	odds := st.SideOdds(side)

	return Bet{
		Side:   side,
		Odds:   odds,
		Amount: o.betAmount(st, odds),
	}, true
}

// pickBetSide chooses a side within a family with probability proportional to
// impliedProbability x (1 - currentShareOfExposure). When neither side has
// recorded exposure, both shares default to 0.33.
func (o *OrderFlowSimulator) pickBetSide(st *market.State, a, b market.Side) market.Side {
	expA, expB := st.SideExposure(a), st.SideExposure(b)

	shareA, shareB := 0.33, 0.33
	if pair := expA + expB; pair > 0 {
		shareA = expA / pair
		shareB = expB / pair
	}

	wa := ImpliedProbability(st.SideOdds(a)) * (1 - shareA)
	wb := ImpliedProbability(st.SideOdds(b)) * (1 - shareB)

	if idx := pickWeighted(o.rng, []float64{wa, wb}); idx == 1 {
		return b
	}
	return a
}

// betAmount draws a stake from Pareto(shape=3) scaled by 50, scales it up for
// odds close to even or shorter, and caps it at 10% of max exposure.
func (o *OrderFlowSimulator) betAmount(st *market.State, odds float64) float64 {
	u := o.rng.Float64()
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	amount := paretoScale / math.Pow(u, 1/paretoShape)

	if odds > 1.0 {
		amount *= 2.0 / odds
	}

	if limit := st.MaxExposure * maxBetFraction; limit > 0 && amount > limit {
		amount = limit
	}
	return amount
}
