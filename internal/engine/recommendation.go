package engine

// RiskStatus is the ordinal risk classification of a market.
type RiskStatus string

const (
	StatusNormal   RiskStatus = "normal"
	StatusElevated RiskStatus = "elevated"
	StatusHigh     RiskStatus = "high"
	StatusCritical RiskStatus = "critical"
)

// Severity returns the ordinal rank of a status, normal being lowest.
func (s RiskStatus) Severity() int {
	switch s {
	case StatusCritical:
		return 3
	case StatusHigh:
		return 2
	case StatusElevated:
		return 1
	default:
		return 0
	}
}

// Recommendation is the engine's decision output for one market. Nil odds
// pointers mean "no change recommended" for that side.
type Recommendation struct {
	MarketAddress string

	NewHomeOdds       *float64
	NewAwayOdds       *float64
	NewHomeSpreadOdds *float64
	NewAwaySpreadOdds *float64
	NewOverOdds       *float64
	NewUnderOdds      *float64

	LiquidityNeeded int64

	MaxBetSize      *int64
	TimeBasedLimits bool
	LimitHomeSide   bool
	LimitAwaySide   bool
	LimitOverSide   bool
	LimitUnderSide  bool

	RiskStatus        RiskStatus
	RiskFactors       []string
	DetailedRationale string
}

// Metrics holds the aggregate statistics of one simulation run.
type Metrics struct {
	ExpectedPnL float64
	PnLStd      float64
	// VaR95 is the 5th percentile of trial P&L: 95% of trials end at or
	// above this value.
	VaR95 float64
	// CVaR95 is the mean P&L of the worst 5% tail.
	CVaR95 float64
	// MaxExpectedExposure is the 95th percentile of per-trial max
	// single-side exposure.
	MaxExpectedExposure float64
}
