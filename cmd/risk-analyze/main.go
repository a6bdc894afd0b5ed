package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/analysis"
	"github.com/oddsvault/bookrisk/pkg/types"
)

func main() {
	file := flag.String("file", "", "path to a snapshot JSON file (single object, or array with -bulk)")
	distFile := flag.String("dist", "", "optional exposure distribution JSON file")
	bulk := flag.Bool("bulk", false, "treat the input as an array of snapshots")
	sims := flag.Int("sims", 0, "number of simulations (0 = default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-seeded)")
	workers := flag.Int("workers", 1, "worker goroutines per simulation")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: risk-analyze -file snapshot.json [-bulk] [-sims N] [-seed N]")
		os.Exit(2)
	}

	logrus.SetLevel(logrus.WarnLevel)

	data, err := os.ReadFile(*file)
	if err != nil {
		fatal("read input: %v", err)
	}

	facade := analysis.NewFacade(analysis.Config{
		Workers: *workers,
		Seed:    *seed,
	})

	var output interface{}
	if *bulk {
		var snaps []*types.MarketSnapshot
		if err := json.Unmarshal(data, &snaps); err != nil {
			fatal("parse snapshots: %v", err)
		}
		output = facade.BulkAnalyzeMarkets(snaps, nil, *sims)
	} else {
		var snap types.MarketSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			fatal("parse snapshot: %v", err)
		}

		var dist *types.ExposureDistribution
		if *distFile != "" {
			distData, err := os.ReadFile(*distFile)
			if err != nil {
				fatal("read distribution: %v", err)
			}
			dist = &types.ExposureDistribution{}
			if err := json.Unmarshal(distData, dist); err != nil {
				fatal("parse distribution: %v", err)
			}
		}

		output = facade.AnalyzeMarketRisk(&snap, dist, *sims)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fatal("encode result: %v", err)
	}
	fmt.Println(string(encoded))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
