package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/analysis"
	"github.com/oddsvault/bookrisk/internal/config"
	"github.com/oddsvault/bookrisk/internal/server"
	"github.com/oddsvault/bookrisk/internal/store"
	natsclient "github.com/oddsvault/bookrisk/pkg/nats"
	"github.com/oddsvault/bookrisk/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logger := logrus.WithField("component", "risk-server")
	logger.Info("Starting risk server...")

	facade := analysis.NewFacade(analysis.Config{
		NumSimulations:  cfg.Simulation.NumSimulations,
		BulkSimulations: cfg.Simulation.BulkSimulations,
		Workers:         cfg.Simulation.Workers,
		IncludePending:  cfg.Simulation.IncludePending,
	})

	var sinks []server.Sink

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		sinks = append(sinks, server.NewStoreSink(store.New(client, cfg.Redis.TTL)))
		logger.Infof("Recommendation store enabled (redis %s)", cfg.Redis.Addr)
	}

	var nc *natsclient.Client
	if cfg.NATS.URL != "" {
		var err error
		nc, err = natsclient.NewClient(cfg.NATS.URL, cfg.NATS.ClientID)
		if err != nil {
			logger.Fatalf("Failed to connect to NATS at %s: %v", cfg.NATS.URL, err)
		}
		defer nc.Close()
		sinks = append(sinks, server.NewAlertSink(nc))
		logger.Infof("Alert publishing enabled (nats %s)", cfg.NATS.URL)
	}

	handler := server.NewHandler(facade, sinks...)

	// Inbound snapshots trigger the same analysis pipeline as the HTTP API.
	if nc != nil {
		_, err := nc.SubscribeSnapshots(func(snap *types.MarketSnapshot) {
			result := facade.AnalyzeMarketRisk(snap, nil, cfg.Simulation.BulkSimulations)
			for _, sink := range sinks {
				sink.Consume(context.Background(), result)
			}
		})
		if err != nil {
			logger.Fatalf("Failed to subscribe to snapshots: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewRouter(handler),
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutdown signal received")
		cancel()
	}()

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
	logger.Info("Server stopped")
}
