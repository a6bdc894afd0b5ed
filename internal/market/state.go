package market

// Side identifies one priced side of a market.
type Side string

const (
	SideHome       Side = "home"
	SideAway       Side = "away"
	SideOver       Side = "over"
	SideUnder      Side = "under"
	SideHomeSpread Side = "home_spread"
	SideAwaySpread Side = "away_spread"
)

// State is an immutable snapshot of one market's pricing and exposure at
// analysis time. It is built fresh per analysis call and never persisted.
type State struct {
	MarketAddress string
	OddsAPIID     string
	Status        string

	CurrentExposure float64
	MaxExposure     float64

	// Decimal odds (>= 1.0 expected) and signed point lines.
	HomeOdds         float64
	AwayOdds         float64
	HomeSpreadPoints float64
	HomeSpreadOdds   float64
	AwaySpreadOdds   float64
	TotalPoints      float64
	OverOdds         float64
	UnderOdds        float64

	// Best-known exposure split. Need not sum to CurrentExposure.
	ExposureHome       float64
	ExposureAway       float64
	ExposureOver       float64
	ExposureUnder      float64
	ExposureHomeSpread float64
	ExposureAwaySpread float64
}

// LiquidityHeadroom returns the remaining exposure capacity as a fraction in
// [0, 1]. A market with MaxExposure == 0 has undefined utilization and is
// treated as having no headroom.
func (s *State) LiquidityHeadroom() float64 {
	if s.MaxExposure <= 0 {
		return 0
	}
	headroom := (s.MaxExposure - s.CurrentExposure) / s.MaxExposure
	if headroom < 0 {
		return 0
	}
	if headroom > 1 {
		return 1
	}
	return headroom
}

// Utilization returns CurrentExposure as a fraction of MaxExposure, or 0 when
// MaxExposure is 0.
func (s *State) Utilization() float64 {
	if s.MaxExposure <= 0 {
		return 0
	}
	return s.CurrentExposure / s.MaxExposure
}

// TrackedExposure returns the sum of the six per-side exposure buckets.
func (s *State) TrackedExposure() float64 {
	return s.ExposureHome + s.ExposureAway +
		s.ExposureOver + s.ExposureUnder +
		s.ExposureHomeSpread + s.ExposureAwaySpread
}

// SideExposure returns the recorded exposure for one side.
func (s *State) SideExposure(side Side) float64 {
	switch side {
	case SideHome:
		return s.ExposureHome
	case SideAway:
		return s.ExposureAway
	case SideOver:
		return s.ExposureOver
	case SideUnder:
		return s.ExposureUnder
	case SideHomeSpread:
		return s.ExposureHomeSpread
	case SideAwaySpread:
		return s.ExposureAwaySpread
	}
	return 0
}

// SideOdds returns the decimal odds priced for one side.
func (s *State) SideOdds(side Side) float64 {
	switch side {
	case SideHome:
		return s.HomeOdds
	case SideAway:
		return s.AwayOdds
	case SideOver:
		return s.OverOdds
	case SideUnder:
		return s.UnderOdds
	case SideHomeSpread:
		return s.HomeSpreadOdds
	case SideAwaySpread:
		return s.AwaySpreadOdds
	}
	return 0
}
