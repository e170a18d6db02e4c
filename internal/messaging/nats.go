package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/stan.go"
)

// Config carries the NATS Streaming connection settings
type Config struct {
	URL       string
	ClusterID string
	ClientID  string
}

// NATSClient publishes and consumes domain events over NATS Streaming
type NATSClient struct {
	conn stan.Conn
}

func NewNATSClient(cfg Config) (*NATSClient, error) {
	conn, err := stan.Connect(cfg.ClusterID, cfg.ClientID,
		stan.NatsURL(cfg.URL),
		stan.ConnectWait(10*time.Second),
		stan.Pings(10, 5),
		stan.SetConnectionLostHandler(func(_ stan.Conn, err error) {
			slog.Error("NATS connection lost", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS streaming: %w", err)
	}

	slog.Info("Connected to NATS streaming", "cluster", cfg.ClusterID, "client", cfg.ClientID)

	return &NATSClient{conn: conn}, nil
}

// Publish marshals the payload and sends it to the subject
func (c *NATSClient) Publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	slog.Debug("Published event", "subject", subject, "bytes", len(data))
	return nil
}

// SubscribeQueue sets up a durable queue subscription so consumer
// instances share the load and resume from the last acked message
func (c *NATSClient) SubscribeQueue(subject, queueGroup, durableName string, handler stan.MsgHandler) (stan.Subscription, error) {
	sub, err := c.conn.QueueSubscribe(subject, queueGroup, handler,
		stan.DurableName(durableName),
		stan.SetManualAckMode(),
		stan.AckWait(30*time.Second),
		stan.MaxInflight(25),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	slog.Info("Subscribed", "subject", subject, "queue", queueGroup, "durable", durableName)
	return sub, nil
}

func (c *NATSClient) Close() error {
	return c.conn.Close()
}
