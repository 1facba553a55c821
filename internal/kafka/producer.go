package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CloudEvent is the envelope every published event is wrapped in.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent builds a CloudEvent around the given payload.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ParseCloudEvent decodes a raw message value into a CloudEvent.
func ParseCloudEvent(value []byte) (CloudEvent, error) {
	var e CloudEvent
	if err := json.Unmarshal(value, &e); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to parse cloud event: %w", err)
	}
	return e, nil
}

// Producer publishes CloudEvents to Kafka.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer for the given brokers. The topic is chosen
// per message.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		logger: logger,
	}
}

// PublishEvent writes the event to the topic, keyed so events for the same
// entity land on the same partition.
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event CloudEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", event.Type),
	)
	return nil
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
