package types

// OddsAdjustment describes a recommended odds move for one priced side.
type OddsAdjustment struct {
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	ChangePct float64 `json:"change_pct"`
}

// LiquidityAction describes a recommended liquidity top-up.
type LiquidityAction struct {
	AmountNeeded int64 `json:"amount_needed"`
}

// BetLimitAction describes recommended bet-size restrictions.
type BetLimitAction struct {
	MaxBetSize      int64    `json:"max_bet_size,omitempty"`
	TimeBasedLimits bool     `json:"time_based_limits"`
	LimitedSides    []string `json:"limited_sides,omitempty"`
}

// RecommendedActions groups the mitigations derived for one market. Only the
// sub-keys that carry a recommendation are populated.
type RecommendedActions struct {
	OddsAdjustments map[string]OddsAdjustment `json:"odds_adjustments,omitempty"`
	Liquidity       *LiquidityAction          `json:"liquidity,omitempty"`
	BetLimits       *BetLimitAction           `json:"bet_limits,omitempty"`
}

// AnalysisResult is the flattened outcome of one market risk analysis.
type AnalysisResult struct {
	AnalysisID         string             `json:"analysis_id"`
	MarketAddress      string             `json:"market_address"`
	RiskStatus         string             `json:"risk_status"`
	RiskFactors        []string           `json:"risk_factors"`
	RecommendedActions RecommendedActions `json:"recommended_actions"`
	DetailedRationale  string             `json:"detailed_rationale"`
	ElapsedMs          int64              `json:"elapsed_ms"`
	Error              string             `json:"error,omitempty"`
}

// PortfolioSummary aggregates bulk analysis results across markets.
type PortfolioSummary struct {
	TotalMarkets                 int    `json:"total_markets"`
	CriticalRisk                 int    `json:"critical_risk"`
	HighRisk                     int    `json:"high_risk"`
	ElevatedRisk                 int    `json:"elevated_risk"`
	NormalRisk                   int    `json:"normal_risk"`
	TotalLiquidityNeeded         int64  `json:"total_liquidity_needed"`
	MarketsNeedingOddsAdjustment int    `json:"markets_needing_odds_adjustment"`
	OverallRiskLevel             string `json:"overall_risk_level"`
}

// PortfolioResult is the outcome of a bulk analysis run.
type PortfolioResult struct {
	Markets []*AnalysisResult `json:"markets"`
	Summary PortfolioSummary  `json:"summary"`
}
