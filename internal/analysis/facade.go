package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/engine"
	"github.com/oddsvault/bookrisk/internal/market"
	"github.com/oddsvault/bookrisk/pkg/types"
)

// Default trial counts: bulk scans trade precision for throughput.
const (
	DefaultSimulations     = engine.DefaultSimulations
	DefaultBulkSimulations = 5000
)

// Statuses admitted by the bulk filter.
const (
	statusOpen    = "Open"
	statusPending = "Pending"
)

// Config tunes a Facade. Zero values fall back to defaults.
type Config struct {
	NumSimulations  int
	BulkSimulations int
	Workers         int
	Seed            int64
	// IncludePending additionally admits markets in the "Pending"
	// ready-for-betting state to bulk analysis.
	IncludePending bool
}

// Facade translates wire-level market snapshots into simulation inputs, runs
// the Monte Carlo engine, and flattens its recommendations into plain result
// records. It never raises to the caller: failures come back as error-shaped
// results carrying the market address.
type Facade struct {
	cfg    Config
	logger *logrus.Entry
}

// NewFacade creates a facade with the given configuration.
func NewFacade(cfg Config) *Facade {
	if cfg.NumSimulations <= 0 {
		cfg.NumSimulations = DefaultSimulations
	}
	if cfg.BulkSimulations <= 0 {
		cfg.BulkSimulations = DefaultBulkSimulations
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Facade{
		cfg:    cfg,
		logger: logrus.WithField("component", "risk-analysis"),
	}
}

// AnalyzeMarketRisk runs a single-market analysis. A nil dist estimates the
// exposure breakdown from the snapshot's total exposure; numSims <= 0 uses
// the configured default.
func (f *Facade) AnalyzeMarketRisk(snap *types.MarketSnapshot, dist *types.ExposureDistribution, numSims int) (result *types.AnalysisResult) {
	start := time.Now()

	address := ""
	if snap != nil {
		address = snap.Address
	}

	defer func() {
		if r := recover(); r != nil {
			f.logger.Errorf("analysis panic for market %s: %v", address, r)
			result = errorResult(address, fmt.Sprintf("internal analysis failure: %v", r))
		}
	}()

	state, err := market.FromSnapshot(snap, dist)
	if err != nil {
		return errorResult(address, err.Error())
	}

	if numSims <= 0 {
		numSims = f.cfg.NumSimulations
	}

	sim := engine.NewSimulator(
		engine.WithSimulations(numSims),
		engine.WithWorkers(f.cfg.Workers),
		engine.WithSeed(f.cfg.Seed),
	)
	rec := sim.RunSimulation(state)

	result = flatten(state, rec)
	result.AnalysisID = uuid.NewString()
	result.ElapsedMs = time.Since(start).Milliseconds()

	f.logger.Infof("analyzed market %s: status=%s factors=%d in %dms",
		address, result.RiskStatus, len(result.RiskFactors), result.ElapsedMs)
	return result
}

// BulkAnalyzeMarkets analyzes every open market independently and aggregates
// a portfolio summary. Exposure distributions are keyed by market address;
// numSims <= 0 uses the bulk default.
func (f *Facade) BulkAnalyzeMarkets(snaps []*types.MarketSnapshot, dists map[string]*types.ExposureDistribution, numSims int) *types.PortfolioResult {
	if numSims <= 0 {
		numSims = f.cfg.BulkSimulations
	}

	out := &types.PortfolioResult{Markets: []*types.AnalysisResult{}}
	for _, snap := range snaps {
		if snap == nil || !f.admitted(snap.Status) {
			continue
		}

		var dist *types.ExposureDistribution
		if dists != nil {
			dist = dists[snap.Address]
		}

		out.Markets = append(out.Markets, f.AnalyzeMarketRisk(snap, dist, numSims))
	}

	out.Summary = summarize(out.Markets)
	return out
}

// admitted reports whether a market status passes the bulk filter. The match
// is case-sensitive.
func (f *Facade) admitted(status string) bool {
	if status == statusOpen {
		return true
	}
	return f.cfg.IncludePending && status == statusPending
}

func summarize(results []*types.AnalysisResult) types.PortfolioSummary {
	s := types.PortfolioSummary{TotalMarkets: len(results)}

	for _, r := range results {
		switch r.RiskStatus {
		case string(engine.StatusCritical):
			s.CriticalRisk++
		case string(engine.StatusHigh):
			s.HighRisk++
		case string(engine.StatusElevated):
			s.ElevatedRisk++
		default:
			s.NormalRisk++
		}

		if r.RecommendedActions.Liquidity != nil {
			s.TotalLiquidityNeeded += r.RecommendedActions.Liquidity.AmountNeeded
		}
		if len(r.RecommendedActions.OddsAdjustments) > 0 {
			s.MarketsNeedingOddsAdjustment++
		}
	}

	switch {
	case s.CriticalRisk > 0:
		s.OverallRiskLevel = string(engine.StatusCritical)
	case s.HighRisk > 0:
		s.OverallRiskLevel = string(engine.StatusHigh)
	case s.TotalMarkets > 0 && float64(s.ElevatedRisk) > 0.1*float64(s.TotalMarkets):
		s.OverallRiskLevel = string(engine.StatusElevated)
	default:
		s.OverallRiskLevel = string(engine.StatusNormal)
	}
	return s
}

func errorResult(address, message string) *types.AnalysisResult {
	return &types.AnalysisResult{
		AnalysisID:    uuid.NewString(),
		MarketAddress: address,
		RiskStatus:    string(engine.StatusNormal),
		RiskFactors:   []string{},
		Error:         message,
	}
}
