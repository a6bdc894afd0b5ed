package engine

import (
	"math"

	"github.com/oddsvault/bookrisk/internal/market"
)

// Classification thresholds, expressed as fractions of max exposure.
const (
	criticalVaRFraction = 0.5
	highVaRFraction     = 0.3
	elevatedVaRFraction = 0.2

	criticalExposureFraction = 0.9
	highExposureFraction     = 0.8
	elevatedExposureFraction = 0.7
)

// Risk-factor and mitigation parameters.
const (
	severeImbalanceRatio   = 3.0
	moderateImbalanceRatio = 1.5

	baseOddsAdjustment = 0.05 // doubled for severe imbalances

	highVarianceFraction = 0.3
	liquidityBuffer      = 1.2
	betCapFraction       = 0.05
)

// Risk-factor tags.
const (
	FactorHighExposure = "high_exposure_risk"
	FactorNegativeEV   = "negative_expected_value"
	FactorHighVariance = "high_variance"
)

// familyImbalance describes an exposure skew within one bet family.
type familyImbalance struct {
	family    string // "moneyline", "total", "spread"
	severe    bool
	overSide  market.Side // the side carrying more exposure
	underSide market.Side
	ratio     float64
}

// detectImbalances checks each bet family for exposure skew. A family is only
// checked when both sides carry positive exposure; ratio > 1.5 is a moderate
// imbalance and ratio > 3 is severe.
func detectImbalances(st *market.State) []familyImbalance {
	pairs := []struct {
		family string
		a, b   market.Side
	}{
		{"moneyline", market.SideHome, market.SideAway},
		{"total", market.SideOver, market.SideUnder},
		{"spread", market.SideHomeSpread, market.SideAwaySpread},
	}

	var imbalances []familyImbalance
	for _, p := range pairs {
		expA, expB := st.SideExposure(p.a), st.SideExposure(p.b)
		if expA <= 0 || expB <= 0 {
			continue
		}

		over, under := p.a, p.b
		larger, smaller := expA, expB
		if expB > expA {
			over, under = p.b, p.a
			larger, smaller = expB, expA
		}

		ratio := larger / smaller
		if ratio <= moderateImbalanceRatio {
			continue
		}

		imbalances = append(imbalances, familyImbalance{
			family:    p.family,
			severe:    ratio > severeImbalanceRatio,
			overSide:  over,
			underSide: under,
			ratio:     ratio,
		})
	}
	return imbalances
}

func (fi familyImbalance) factorTag() string {
	if fi.severe {
		return "severe_" + fi.family + "_imbalance"
	}
	return fi.family + "_imbalance"
}

// classify assigns the ordinal risk status, first match wins. Exposure-based
// conditions are treated as false when max exposure is zero.
func classify(m Metrics, maxExposure float64) RiskStatus {
	exposureKnown := maxExposure > 0

	switch {
	case m.VaR95 < -criticalVaRFraction*maxExposure ||
		(exposureKnown && m.MaxExpectedExposure > criticalExposureFraction*maxExposure):
		return StatusCritical
	case m.VaR95 < -highVaRFraction*maxExposure ||
		(exposureKnown && m.MaxExpectedExposure > highExposureFraction*maxExposure):
		return StatusHigh
	case m.VaR95 < -elevatedVaRFraction*maxExposure ||
		(exposureKnown && m.MaxExpectedExposure > elevatedExposureFraction*maxExposure):
		return StatusElevated
	default:
		return StatusNormal
	}
}

// detectRiskFactors runs the independent factor checks in a fixed order.
// Tags are distinct by construction.
func detectRiskFactors(st *market.State, m Metrics, imbalances []familyImbalance) []string {
	var factors []string
	for _, fi := range imbalances {
		factors = append(factors, fi.factorTag())
	}

	if st.MaxExposure > 0 && m.MaxExpectedExposure > highExposureFraction*st.MaxExposure {
		factors = append(factors, FactorHighExposure)
	}
	if m.ExpectedPnL < 0 {
		factors = append(factors, FactorNegativeEV)
	}
	if st.MaxExposure > 0 && m.PnLStd > highVarianceFraction*st.MaxExposure {
		factors = append(factors, FactorHighVariance)
	}
	return factors
}

func hasFactor(factors []string, tag string) bool {
	for _, f := range factors {
		if f == tag {
			return true
		}
	}
	return false
}

// setNewOdds records an odds recommendation for one side.
func setNewOdds(rec *Recommendation, side market.Side, value float64) {
	v := value
	switch side {
	case market.SideHome:
		rec.NewHomeOdds = &v
	case market.SideAway:
		rec.NewAwayOdds = &v
	case market.SideOver:
		rec.NewOverOdds = &v
	case market.SideUnder:
		rec.NewUnderOdds = &v
	case market.SideHomeSpread:
		rec.NewHomeSpreadOdds = &v
	case market.SideAwaySpread:
		rec.NewAwaySpreadOdds = &v
	}
}

// setSideLimit flags the over-exposed side of a family; spread sides fold
// into the corresponding team flag.
func setSideLimit(rec *Recommendation, side market.Side) {
	switch exposureBucket(side) {
	case market.SideHome:
		rec.LimitHomeSide = true
	case market.SideAway:
		rec.LimitAwaySide = true
	case market.SideOver:
		rec.LimitOverSide = true
	case market.SideUnder:
		rec.LimitUnderSide = true
	}
}

// deriveRecommendation turns aggregated trial metrics into the concrete
// mitigation set for the market.
func deriveRecommendation(st *market.State, m Metrics) *Recommendation {
	imbalances := detectImbalances(st)

	rec := &Recommendation{
		MarketAddress: st.MarketAddress,
		RiskStatus:    classify(m, st.MaxExposure),
		RiskFactors:   detectRiskFactors(st, m, imbalances),
	}

	// Any imbalance moves the over-exposed side's odds down and the
	// under-exposed side's up by a symmetric fraction, doubled for severe
	// skew. Severe skew additionally limits the over-exposed side.
	for _, fi := range imbalances {
		adjust := baseOddsAdjustment
		if fi.severe {
			adjust *= 2
			setSideLimit(rec, fi.overSide)
		}
		setNewOdds(rec, fi.overSide, st.SideOdds(fi.overSide)*(1-adjust))
		setNewOdds(rec, fi.underSide, st.SideOdds(fi.underSide)*(1+adjust))
	}

	if hasFactor(rec.RiskFactors, FactorHighExposure) {
		shortfall := m.MaxExpectedExposure*liquidityBuffer - st.MaxExposure
		if shortfall > 0 {
			rec.LiquidityNeeded = int64(math.Round(shortfall))
		}
	}

	if rec.RiskStatus == StatusHigh || rec.RiskStatus == StatusCritical {
		maxBet := int64(math.Round(betCapFraction * st.MaxExposure))
		rec.MaxBetSize = &maxBet
		rec.TimeBasedLimits = true
	}

	rec.DetailedRationale = buildRationale(st, m, rec)
	return rec
}
