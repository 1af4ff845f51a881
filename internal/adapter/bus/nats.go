// internal/adapter/bus/nats.go

package bus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"cadence/internal/config"
	"cadence/internal/domain/events"
	"cadence/internal/platform/logger"
)

// NATSBus publishes and subscribes through a NATS connection
type NATSBus struct {
	conn   *nats.Conn
	prefix string
}

// Connect opens a NATS connection configured like the rest of the service
func Connect(cfg config.NATSConfig, log *logger.Logger) (*NATSBus, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return &NATSBus{conn: nc, prefix: cfg.TopicPrefix}, nil
}

// Publish sends data on the prefixed subject
func (b *NATSBus) Publish(subject string, data []byte) error {
	return b.conn.Publish(Subject(b.prefix, subject), data)
}

// Subscribe registers handler for the prefixed subject; wildcards are allowed
func (b *NATSBus) Subscribe(subject string, handler func(subject string, data []byte)) (func() error, error) {
	sub, err := b.conn.Subscribe(Subject(b.prefix, subject), func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	return sub.Unsubscribe, nil
}

// Close drains pending messages and closes the connection
func (b *NATSBus) Close() {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Subject joins the topic prefix and subject
func Subject(prefix, subject string) string {
	if prefix == "" {
		return subject
	}
	return prefix + "." + subject
}

// Nop discards everything published to it and never delivers messages
type Nop struct{}

func (Nop) Publish(string, []byte) error { return nil }

func (Nop) Subscribe(string, func(string, []byte)) (func() error, error) {
	return func() error { return nil }, nil
}

// PublishJSON wraps payload in an events.Envelope and publishes it
func PublishJSON(pub events.Publisher, subject string, payload any) error {
	if pub == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling %s payload: %w", subject, err)
	}
	env := events.Envelope{
		ID:        uuid.New().String(),
		Type:      subject,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("error marshaling %s envelope: %w", subject, err)
	}
	return pub.Publish(subject, data)
}
