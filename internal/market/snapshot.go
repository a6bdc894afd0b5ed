package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oddsvault/bookrisk/pkg/types"
)

// Fixed-point scaling used by the market API: odds x1000, point lines x10.
var (
	oddsScale  = decimal.NewFromInt(1000)
	pointScale = decimal.NewFromInt(10)
)

// Default split applied when no real exposure breakdown is available:
// 40% across moneyline sides, 35% across spread sides, 25% across totals.
const (
	defaultMoneylineShare = 0.40
	defaultSpreadShare    = 0.35
	defaultTotalShare     = 0.25
)

func oddsFromFixed(v int64) float64 {
	return decimal.NewFromInt(v).Div(oddsScale).InexactFloat64()
}

func pointsFromFixed(v int64) float64 {
	return decimal.NewFromInt(v).Div(pointScale).InexactFloat64()
}

// FromSnapshot converts a wire-level snapshot into a State, decoding the
// fixed-point odds and point lines. When dist is nil the exposure breakdown
// is estimated from CurrentExposure via EstimateExposureDistribution.
func FromSnapshot(snap *types.MarketSnapshot, dist *types.ExposureDistribution) (*State, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil market snapshot")
	}

	if dist == nil {
		d := EstimateExposureDistribution(snap.CurrentExposure)
		dist = &d
	}

	return &State{
		MarketAddress:    snap.Address,
		OddsAPIID:        snap.OddsAPIID,
		Status:           snap.Status,
		CurrentExposure:  snap.CurrentExposure,
		MaxExposure:      snap.MaxExposure,
		HomeOdds:         oddsFromFixed(snap.HomeOdds),
		AwayOdds:         oddsFromFixed(snap.AwayOdds),
		HomeSpreadPoints: pointsFromFixed(snap.HomeSpreadPoints),
		HomeSpreadOdds:   oddsFromFixed(snap.HomeSpreadOdds),
		AwaySpreadOdds:   oddsFromFixed(snap.AwaySpreadOdds),
		TotalPoints:      pointsFromFixed(snap.TotalPoints),
		OverOdds:         oddsFromFixed(snap.OverOdds),
		UnderOdds:        oddsFromFixed(snap.UnderOdds),

		ExposureHome:       dist.Home,
		ExposureAway:       dist.Away,
		ExposureOver:       dist.Over,
		ExposureUnder:      dist.Under,
		ExposureHomeSpread: dist.HomeSpread,
		ExposureAwaySpread: dist.AwaySpread,
	}, nil
}

// EstimateExposureDistribution synthesizes a per-side exposure split from the
// market's total exposure, using the default 40/35/25 family shares with each
// family split evenly between its two sides.
func EstimateExposureDistribution(currentExposure float64) types.ExposureDistribution {
	if currentExposure <= 0 {
		return types.ExposureDistribution{}
	}
	return types.ExposureDistribution{
		Home:       currentExposure * defaultMoneylineShare / 2,
		Away:       currentExposure * defaultMoneylineShare / 2,
		HomeSpread: currentExposure * defaultSpreadShare / 2,
		AwaySpread: currentExposure * defaultSpreadShare / 2,
		Over:       currentExposure * defaultTotalShare / 2,
		Under:      currentExposure * defaultTotalShare / 2,
	}
}
