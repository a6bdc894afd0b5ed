package types

// MarketSnapshot is the wire-level view of one betting market as returned by
// the market API. Odds are fixed-point integers scaled by 1000 and point
// lines are scaled by 10, matching the on-chain storage convention.
type MarketSnapshot struct {
	Address          string  `json:"address"`
	OddsAPIID        string  `json:"oddsApiId"`
	Status           string  `json:"status"`
	HomeOdds         int64   `json:"homeOdds"`
	AwayOdds         int64   `json:"awayOdds"`
	HomeSpreadPoints int64   `json:"homeSpreadPoints"`
	HomeSpreadOdds   int64   `json:"homeSpreadOdds"`
	AwaySpreadOdds   int64   `json:"awaySpreadOdds"`
	TotalPoints      int64   `json:"totalPoints"`
	OverOdds         int64   `json:"overOdds"`
	UnderOdds        int64   `json:"underOdds"`
	CurrentExposure  float64 `json:"currentExposure"`
	MaxExposure      float64 `json:"maxExposure"`
}

// ExposureDistribution is the best-known split of a market's exposure across
// the six priced sides. Values are in the same unit as the exposure totals.
type ExposureDistribution struct {
	Home       float64 `json:"home"`
	Away       float64 `json:"away"`
	Over       float64 `json:"over"`
	Under      float64 `json:"under"`
	HomeSpread float64 `json:"home_spread"`
	AwaySpread float64 `json:"away_spread"`
}
