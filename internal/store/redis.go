package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/pkg/types"
)

const (
	recoKeyPrefix = "risk:reco:"
	recoStream    = "risk.recommendations"
)

// Store keeps the latest recommendation per market in Redis and appends every
// recommendation to a stream for downstream consumers.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// New creates a store over an existing Redis client.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: logrus.WithField("component", "reco-store"),
	}
}

// SaveRecommendation writes the latest recommendation for the market and
// appends it to the recommendation stream.
func (s *Store) SaveRecommendation(ctx context.Context, result *types.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	key := recoKeyPrefix + result.MarketAddress
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendation: %w", err)
	}

	if err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: recoStream,
		Values: map[string]interface{}{
			"market":         result.MarketAddress,
			"risk_status":    result.RiskStatus,
			"recommendation": string(data),
		},
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	s.logger.Debugf("stored recommendation for %s (status=%s)", result.MarketAddress, result.RiskStatus)
	return nil
}

// GetRecommendation returns the latest stored recommendation for a market, or
// nil when none exists.
func (s *Store) GetRecommendation(ctx context.Context, marketAddress string) (*types.AnalysisResult, error) {
	data, err := s.client.Get(ctx, recoKeyPrefix+marketAddress).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendation: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
	}
	return &result, nil
}
