package event

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	logger logrus.FieldLogger
}

// NewKafkaPublisher builds publisher writing events to brokers, topic is taken from event
func NewKafkaPublisher(brokers []string, logger logrus.FieldLogger) Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &kafkaPublisher{writer: w, logger: logger}
}

func (p *kafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s - %w", e.Type, err)
	}

	msg := kafka.Message{
		Topic: e.Topic(),
		Key:   []byte(e.ID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event %s to %s - %w", e.Type, msg.Topic, err)
	}

	p.logger.WithFields(logrus.Fields{"topic": msg.Topic, "type": e.Type, "id": e.ID}).Debug("event published")
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
