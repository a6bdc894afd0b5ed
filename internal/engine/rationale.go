package engine

import (
	"fmt"
	"strings"

	"github.com/oddsvault/bookrisk/internal/market"
)

// Closing paragraphs keyed by risk status.
var statusSummaries = map[RiskStatus]string{
	StatusNormal: "Overall the book is balanced for this market. No intervention " +
		"is required; continue monitoring at the standard cadence.",
	StatusElevated: "Risk on this market is elevated. The recommended adjustments " +
		"should be applied at the next pricing update, and exposure should be " +
		"re-checked within the hour.",
	StatusHigh: "Risk on this market is high. Apply the recommended odds and limit " +
		"changes promptly; without intervention a plausible run of sharp flow " +
		"leaves the book with an outsized one-sided liability.",
	StatusCritical: "Risk on this market is critical. Apply all recommended " +
		"mitigations immediately and consider suspending new bets until exposure " +
		"is rebalanced or additional liquidity is in place.",
}

// buildRationale renders the deterministic narrative for a recommendation:
// current state, exposure breakdown, aggregate metrics, detected factors, an
// explanation per populated mitigation, and a severity-keyed closing summary.
func buildRationale(st *market.State, m Metrics, rec *Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Risk analysis for market %s (status: %s).\n\n", st.MarketAddress, rec.RiskStatus)

	fmt.Fprintf(&b, "Current exposure is %.2f of a maximum %.2f (%.1f%% utilized).\n",
		st.CurrentExposure, st.MaxExposure, st.Utilization()*100)
	b.WriteString(exposureBreakdown(st))

	fmt.Fprintf(&b, "\nAcross the simulated trials the expected P&L is %.2f with a standard "+
		"deviation of %.2f. The 95%% Value at Risk is %.2f and the conditional VaR "+
		"(average of the worst 5%% of trials) is %.2f. The 95th-percentile single-side "+
		"exposure is %.2f.\n", m.ExpectedPnL, m.PnLStd, m.VaR95, m.CVaR95, m.MaxExpectedExposure)

	if len(rec.RiskFactors) > 0 {
		names := make([]string, len(rec.RiskFactors))
		for i, f := range rec.RiskFactors {
			names[i] = titleCaseTag(f)
		}
		fmt.Fprintf(&b, "\nRisk factors detected: %s.\n", strings.Join(names, ", "))
	} else {
		b.WriteString("\nNo risk factors detected.\n")
	}

	b.WriteString(actionNarrative(st, m, rec))

	b.WriteString("\n")
	b.WriteString(statusSummaries[rec.RiskStatus])
	return b.String()
}

// exposureBreakdown renders each side's share of the tracked exposure,
// guarding the zero-total case.
func exposureBreakdown(st *market.State) string {
	total := st.TrackedExposure()

	sides := []struct {
		label string
		value float64
	}{
		{"home", st.ExposureHome},
		{"away", st.ExposureAway},
		{"over", st.ExposureOver},
		{"under", st.ExposureUnder},
		{"home spread", st.ExposureHomeSpread},
		{"away spread", st.ExposureAwaySpread},
	}

	parts := make([]string, 0, len(sides))
	for _, s := range sides {
		pct := 0.0
		if total > 0 {
			pct = s.value / total * 100
		}
		parts = append(parts, fmt.Sprintf("%s %.1f%%", s.label, pct))
	}
	return fmt.Sprintf("Tracked exposure split: %s.\n", strings.Join(parts, ", "))
}

// actionNarrative explains every populated recommendation field.
func actionNarrative(st *market.State, m Metrics, rec *Recommendation) string {
	var b strings.Builder

	adjustments := []struct {
		label   string
		current float64
		next    *float64
	}{
		{"home", st.HomeOdds, rec.NewHomeOdds},
		{"away", st.AwayOdds, rec.NewAwayOdds},
		{"over", st.OverOdds, rec.NewOverOdds},
		{"under", st.UnderOdds, rec.NewUnderOdds},
		{"home spread", st.HomeSpreadOdds, rec.NewHomeSpreadOdds},
		{"away spread", st.AwaySpreadOdds, rec.NewAwaySpreadOdds},
	}
	for _, adj := range adjustments {
		if adj.next == nil {
			continue
		}
		pct := 0.0
		if adj.current != 0 {
			pct = (*adj.next - adj.current) / adj.current * 100
		}
		fmt.Fprintf(&b, "Adjust %s odds from %.3f to %.3f (%+.1f%%) to steer flow "+
			"toward the under-bet side.\n", adj.label, adj.current, *adj.next, pct)
	}

	if rec.LiquidityNeeded > 0 {
		fmt.Fprintf(&b, "Additional liquidity of %d is needed: the 95th-percentile "+
			"exposure of %.2f with a %.0f%% buffer exceeds the current maximum of %.2f.\n",
			rec.LiquidityNeeded, m.MaxExpectedExposure, (liquidityBuffer-1)*100, st.MaxExposure)
	}

	if rec.MaxBetSize != nil {
		fmt.Fprintf(&b, "Cap individual bets at %d (%.0f%% of max exposure) and apply "+
			"time-based limits while the market stays at %s risk.\n",
			*rec.MaxBetSize, betCapFraction*100, rec.RiskStatus)
	}

	var limited []string
	if rec.LimitHomeSide {
		limited = append(limited, "home")
	}
	if rec.LimitAwaySide {
		limited = append(limited, "away")
	}
	if rec.LimitOverSide {
		limited = append(limited, "over")
	}
	if rec.LimitUnderSide {
		limited = append(limited, "under")
	}
	if len(limited) > 0 {
		fmt.Fprintf(&b, "Restrict new bets on the %s side(s), which carry the bulk of "+
			"the current exposure.\n", strings.Join(limited, ", "))
	}

	if b.Len() == 0 {
		return ""
	}
	return "\n" + b.String()
}

// titleCaseTag renders a snake_case factor tag as a title-cased phrase, e.g.
// "severe_moneyline_imbalance" -> "Severe Moneyline Imbalance".
func titleCaseTag(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
