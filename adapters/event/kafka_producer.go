package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/devconnect/api/internal/application/service"
	"github.com/devconnect/api/internal/config"
)

const (
	TopicUserEvents = "user.events"
	TopicPostEvents = "post.events"
)

// KafkaProducerClient publishes lifecycle events. Constructed with no
// brokers it is a disabled producer: every publish is a silent no-op.
type KafkaProducerClient struct {
	UserEventsWriter *kafka.Writer
	PostEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return &KafkaProducerClient{}, nil
	}

	userWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicUserEvents,
		Balancer: &kafka.LeastBytes{},
	}

	postWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		UserEventsWriter: userWriter,
		PostEventsWriter: postWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, e service.UserEvent) error {
	if c == nil || c.UserEventsWriter == nil {
		return nil
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal user event: %w", err)
	}
	return c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, e service.PostEvent) error {
	if c == nil || c.PostEventsWriter == nil {
		return nil
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}
	return c.PostEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.PostID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.UserEventsWriter != nil {
		c.UserEventsWriter.Close()
	}
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
}
