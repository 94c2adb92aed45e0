package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	UserRegistered = "user_registered"
	UserLoggedIn   = "user_logged_in"
	UserLoggedOut  = "user_logged_out"
	UserUpdated    = "user_updated"
	UserDeleted    = "user_deleted"
)

type Event struct {
	Type     string    `json:"type"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// New returns a kafka publisher, or a no-op one when no brokers are configured.
func New(brokers []string, topic string, l *slog.Logger) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(brokers, topic, l)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher writes asynchronously; delivery failures are reported to l.
func NewKafkaPublisher(brokers []string, topic string, l *slog.Logger) *KafkaPublisher {
	if l == nil {
		l = slog.Default()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				l.Error("event_delivery_failed", "topic", topic, "count", len(messages), "error", err)
			}
		},
	}
	return &KafkaPublisher{writer: w}
}

func encode(e Event) (kafka.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.UserID),
		Value: data,
		Time:  e.At,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := encode(e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
