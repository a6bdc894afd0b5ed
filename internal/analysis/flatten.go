package analysis

import (
	"github.com/oddsvault/bookrisk/internal/engine"
	"github.com/oddsvault/bookrisk/internal/market"
	"github.com/oddsvault/bookrisk/pkg/types"
)

// flatten converts an engine recommendation into the wire-level result
// record, populating only the action sub-keys that carry a recommendation.
func flatten(st *market.State, rec *engine.Recommendation) *types.AnalysisResult {
	result := &types.AnalysisResult{
		MarketAddress:     rec.MarketAddress,
		RiskStatus:        string(rec.RiskStatus),
		RiskFactors:       append([]string{}, rec.RiskFactors...),
		DetailedRationale: rec.DetailedRationale,
	}

	if adjustments := oddsAdjustments(st, rec); len(adjustments) > 0 {
		result.RecommendedActions.OddsAdjustments = adjustments
	}

	if rec.LiquidityNeeded > 0 {
		result.RecommendedActions.Liquidity = &types.LiquidityAction{
			AmountNeeded: rec.LiquidityNeeded,
		}
	}

	if limits := betLimits(rec); limits != nil {
		result.RecommendedActions.BetLimits = limits
	}

	return result
}

func oddsAdjustments(st *market.State, rec *engine.Recommendation) map[string]types.OddsAdjustment {
	entries := []struct {
		key  string
		from float64
		to   *float64
	}{
		{string(market.SideHome), st.HomeOdds, rec.NewHomeOdds},
		{string(market.SideAway), st.AwayOdds, rec.NewAwayOdds},
		{string(market.SideOver), st.OverOdds, rec.NewOverOdds},
		{string(market.SideUnder), st.UnderOdds, rec.NewUnderOdds},
		{string(market.SideHomeSpread), st.HomeSpreadOdds, rec.NewHomeSpreadOdds},
		{string(market.SideAwaySpread), st.AwaySpreadOdds, rec.NewAwaySpreadOdds},
	}

	adjustments := map[string]types.OddsAdjustment{}
	for _, e := range entries {
		if e.to == nil {
			continue
		}
		pct := 0.0
		if e.from != 0 {
			pct = (*e.to - e.from) / e.from * 100
		}
		adjustments[e.key] = types.OddsAdjustment{
			From:      e.from,
			To:        *e.to,
			ChangePct: pct,
		}
	}
	if len(adjustments) == 0 {
		return nil
	}
	return adjustments
}

func betLimits(rec *engine.Recommendation) *types.BetLimitAction {
	var limited []string
	if rec.LimitHomeSide {
		limited = append(limited, string(market.SideHome))
	}
	if rec.LimitAwaySide {
		limited = append(limited, string(market.SideAway))
	}
	if rec.LimitOverSide {
		limited = append(limited, string(market.SideOver))
	}
	if rec.LimitUnderSide {
		limited = append(limited, string(market.SideUnder))
	}

	if rec.MaxBetSize == nil && !rec.TimeBasedLimits && len(limited) == 0 {
		return nil
	}

	limits := &types.BetLimitAction{
		TimeBasedLimits: rec.TimeBasedLimits,
		LimitedSides:    limited,
	}
	if rec.MaxBetSize != nil {
		limits.MaxBetSize = *rec.MaxBetSize
	}
	return limits
}
