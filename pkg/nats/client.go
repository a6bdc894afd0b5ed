package nats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/oddsvault/bookrisk/pkg/types"
)

// Client wraps a NATS connection with risk-engine-specific publishing and
// subscription helpers.
type Client struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewClient connects to NATS with unbounded reconnects.
func NewClient(url, clientID string) (*Client, error) {
	logger := logrus.WithField("component", "nats-client")

	opts := []nats.Option{
		nats.Name(clientID),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Errorf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Errorf("NATS error: %v", err)
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Client{conn: conn, logger: logger}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// PublishRecommendation publishes an analysis result for its market.
func (c *Client) PublishRecommendation(result *types.AnalysisResult) error {
	return c.publish(RecommendationSubject(result.MarketAddress), result)
}

// PublishAlert publishes a high or critical result on the alert subject so
// operators can react without consuming the full recommendation stream.
func (c *Client) PublishAlert(result *types.AnalysisResult) error {
	return c.publish(AlertSubject(result.RiskStatus, result.MarketAddress), result)
}

func (c *Client) publish(subject string, data interface{}) error {
	msg, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.conn.Publish(subject, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	c.logger.Debugf("published to %s", subject)
	return nil
}

// SnapshotHandler processes an inbound market snapshot.
type SnapshotHandler func(snapshot *types.MarketSnapshot)

// SubscribeSnapshots subscribes to inbound market snapshots. Malformed
// payloads are logged and dropped.
func (c *Client) SubscribeSnapshots(handler SnapshotHandler) (*nats.Subscription, error) {
	sub, err := c.conn.Subscribe(snapshotSubjectFilter, func(msg *nats.Msg) {
		var snap types.MarketSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			c.logger.Errorf("invalid snapshot on %s: %v", msg.Subject, err)
			return
		}
		handler(&snap)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", snapshotSubjectFilter, err)
	}

	c.logger.Infof("subscribed to %s", snapshotSubjectFilter)
	return sub, nil
}
