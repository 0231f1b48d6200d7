// Package notify delivers notifications to out-of-band channels.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// messageWriter is the subset of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes each notification as a JSON message keyed by
// recipient, so one recipient's messages land on one partition in order.
type KafkaNotifier struct {
	writer messageWriter
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

func NewKafkaNotifier(cfg KafkaConfig) *KafkaNotifier {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaNotifier{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}}
}

func (n *KafkaNotifier) Notify(ctx context.Context, note ports.Notification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("kafka: marshal notification: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(note.Recipient),
		Value: payload,
		Time:  note.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(note.Type)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", note.Type, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
