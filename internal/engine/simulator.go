package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/market"
)

// DefaultSimulations is the trial count used when none is configured. Bulk
// scans typically run fewer trials per market.
const DefaultSimulations = 10000

// Simulator runs Monte Carlo trials for one market and derives a
// Recommendation from the aggregated risk metrics. Trials are independent
// and identically distributed; there is no shared mutable state across them.
type Simulator struct {
	numSimulations int
	workers        int
	seed           int64
	logger         *logrus.Entry
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSimulations sets the number of trials per run.
func WithSimulations(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.numSimulations = n
		}
	}
}

// WithWorkers sets the number of goroutines trials are spread across.
// Workers change nothing but wall-clock time: trials are i.i.d.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSeed pins the RNG seed so runs are reproducible. Zero (the default)
// seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// NewSimulator creates a simulator with the given options.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		numSimulations: DefaultSimulations,
		workers:        1,
		logger:         logrus.WithField("component", "monte-carlo"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunSimulation executes the configured number of trials against the market
// and returns the resulting recommendation. Degenerate inputs (zero odds,
// zero max exposure) produce defined, if trivial, outputs rather than panics.
func (s *Simulator) RunSimulation(st *market.State) *Recommendation {
	start := time.Now()

	pnls, exposures := s.runTrials(st)

	var95 := percentile(pnls, 5)
	metrics := Metrics{
		ExpectedPnL:         mean(pnls),
		PnLStd:              stddev(pnls),
		VaR95:               var95,
		CVaR95:              tailMean(pnls, var95),
		MaxExpectedExposure: percentile(exposures, 95),
	}

	rec := deriveRecommendation(st, metrics)

	s.logger.Debugf("market %s: %d trials in %s, status=%s",
		st.MarketAddress, s.numSimulations, time.Since(start), rec.RiskStatus)

	return rec
}

// runTrials executes the trial loop, across a worker pool when configured.
func (s *Simulator) runTrials(st *market.State) (pnls, exposures []float64) {
	pnls = make([]float64, s.numSimulations)
	exposures = make([]float64, s.numSimulations)

	baseSeed := s.seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	if s.workers <= 1 {
		s.runRange(st, rand.New(rand.NewSource(baseSeed)), pnls, exposures, 0, s.numSimulations)
		return pnls, exposures
	}

	var wg sync.WaitGroup
	chunk := (s.numSimulations + s.workers - 1) / s.workers
	for w := 0; w < s.workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > s.numSimulations {
			hi = s.numSimulations
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int, seed int64) {
			defer wg.Done()
			s.runRange(st, rand.New(rand.NewSource(seed)), pnls, exposures, lo, hi)
		}(lo, hi, baseSeed+int64(w+1))
	}
	wg.Wait()

	return pnls, exposures
}

func (s *Simulator) runRange(st *market.State, rng *rand.Rand, pnls, exposures []float64, lo, hi int) {
	sampler := NewOutcomeSampler(rng)
	flow := NewOrderFlowSimulator(rng)

	for i := lo; i < hi; i++ {
		outcome := sampler.Sample(st)
		bets := flow.SimulateBatch(st)
		trial := EvaluateTrial(st, outcome, bets)
		pnls[i] = trial.PnL
		exposures[i] = trial.MaxSideExposure
	}
}
