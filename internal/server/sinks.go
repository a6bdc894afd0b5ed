package server

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/internal/engine"
	"github.com/oddsvault/bookrisk/internal/store"
	"github.com/oddsvault/bookrisk/pkg/nats"
	"github.com/oddsvault/bookrisk/pkg/types"
)

// StoreSink persists every result to the recommendation store.
type StoreSink struct {
	store  *store.Store
	logger *logrus.Entry
}

// NewStoreSink creates a sink around a recommendation store.
func NewStoreSink(s *store.Store) *StoreSink {
	return &StoreSink{
		store:  s,
		logger: logrus.WithField("component", "store-sink"),
	}
}

// Consume stores the result; failures are logged, not propagated.
func (s *StoreSink) Consume(ctx context.Context, result *types.AnalysisResult) {
	if err := s.store.SaveRecommendation(ctx, result); err != nil {
		s.logger.Errorf("failed to store recommendation for %s: %v", result.MarketAddress, err)
	}
}

// AlertSink publishes every result to NATS, with high and critical results
// additionally raised on the alert subject.
type AlertSink struct {
	client *nats.Client
	logger *logrus.Entry
}

// NewAlertSink creates a sink around a NATS client.
func NewAlertSink(c *nats.Client) *AlertSink {
	return &AlertSink{
		client: c,
		logger: logrus.WithField("component", "alert-sink"),
	}
}

// Consume publishes the result; failures are logged, not propagated.
func (s *AlertSink) Consume(ctx context.Context, result *types.AnalysisResult) {
	if err := s.client.PublishRecommendation(result); err != nil {
		s.logger.Errorf("failed to publish recommendation for %s: %v", result.MarketAddress, err)
		return
	}

	switch result.RiskStatus {
	case string(engine.StatusHigh), string(engine.StatusCritical):
		if err := s.client.PublishAlert(result); err != nil {
			s.logger.Errorf("failed to publish alert for %s: %v", result.MarketAddress, err)
		}
	}
}
