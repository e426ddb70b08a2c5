package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/models"
	"github.com/segmentio/kafka-go"
)

// Producer publishes domain events to Kafka. It is the post-commit outbox
// step of the toggle/notify flow: publishing happens after the triggering
// transaction commits and failures never propagate to the caller.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// Config carries broker addresses and the topic name.
type Config struct {
	Brokers []string
	Topic   string
}

// NewProducer builds a Kafka producer. Callers may pass a nil *Producer
// around freely; Publish on nil is a no-op.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("events: no brokers configured")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Producer{writer: w, topic: cfg.Topic}, nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ActionToggled is published after an action toggle commits.
type ActionToggled struct {
	UserID     uint                `json:"user_id"`
	ActionType models.ActionType   `json:"action_type"`
	Target     models.EntityRef    `json:"target"`
	Status     models.ToggleStatus `json:"status"`
	At         time.Time           `json:"at"`
}

// NotificationEmitted is published after a notification row is written.
type NotificationEmitted struct {
	NotificationID uint             `json:"notification_id"`
	RecipientID    uint             `json:"recipient_id"`
	NotifType      models.NotifType `json:"notif_type"`
	At             time.Time        `json:"at"`
}

// Publish serializes the event under the given key. Nil producers drop
// events silently.
func (p *Producer) Publish(ctx context.Context, key string, event interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}
