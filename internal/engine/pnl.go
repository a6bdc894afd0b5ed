package engine

import (
	"github.com/oddsvault/bookrisk/internal/market"
)

// TrialResult holds the book's outcome for one simulated trial.
type TrialResult struct {
	PnL float64
	// MaxSideExposure is the exposure implied by this trial: the market's
	// existing exposure plus the largest single bucket of simulated
	// additions across home/away/over/under.
	MaxSideExposure float64
}

// betWins reports whether a bet's side matches the simulated outcome for its
// family.
func betWins(side market.Side, out Outcome) bool {
	switch side {
	case market.SideHome, market.SideAway:
		return side == out.Winner
	case market.SideOver, market.SideUnder:
		return side == out.TotalSide
	case market.SideHomeSpread, market.SideAwaySpread:
		return side == out.Cover
	}
	return false
}

// exposureBucket maps a bet side to its exposure bucket; spread sides fold
// into the corresponding team bucket.
func exposureBucket(side market.Side) market.Side {
	switch side {
	case market.SideHomeSpread:
		return market.SideHome
	case market.SideAwaySpread:
		return market.SideAway
	}
	return side
}

// EvaluateTrial computes the book's profit and loss for one simulated trial.
// A winning bet costs the book amount x (odds - 1); a losing bet leaves the
// stake with the book.
func EvaluateTrial(st *market.State, out Outcome, bets []Bet) TrialResult {
	added := map[market.Side]float64{}

	pnl := 0.0
	for _, bet := range bets {
		if betWins(bet.Side, out) {
			pnl -= bet.Amount * (bet.Odds - 1)
		} else {
			pnl += bet.Amount
		}

		// Each accepted bet adds its potential payout to its side's
		// exposure regardless of the simulated outcome.
		liability := bet.Amount * (bet.Odds - 1)
		if liability > 0 {
			added[exposureBucket(bet.Side)] += liability
		}
	}

	maxAdded := 0.0
	for _, v := range added {
		if v > maxAdded {
			maxAdded = v
		}
	}

	return TrialResult{PnL: pnl, MaxSideExposure: st.CurrentExposure + maxAdded}
}
